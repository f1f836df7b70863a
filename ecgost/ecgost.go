// Package ecgost implements the GOST R 34.10 elliptic-curve signature
// scheme (2001/2012 revisions share this shape): sign with
// s = (r*d + k*e) mod q, verify by reconstructing r from v = e^-1.
package ecgost

import (
	"errors"
	"io"
	"math/big"

	"github.com/ikle/goecc/curve"
	"github.com/ikle/goecc/ecdsa"
)

// ErrNotAPoint is returned by Verify when the public key does not satisfy
// its group's curve equation.
var ErrNotAPoint = errors.New("ecgost: public key is not a point on the curve")

// PrivateKey is a signing key over a fixed Group.
type PrivateKey struct {
	Group *curve.Group
	D     *big.Int
}

// PublicKey is a verification key over a fixed Group.
type PublicKey struct {
	Group  *curve.Group
	Qx, Qy *big.Int
}

// Signature is the (r, s) pair produced by Sign.
type Signature struct {
	R, S *big.Int
}

// GenerateKey draws a private key and derives the matching public key. Key
// generation is identical in shape to EC-DSA's, so it is not duplicated
// here: GenerateKey calls ecdsa.GenerateKey and wraps the result.
func GenerateKey(g *curve.Group, rand io.Reader) (*PrivateKey, *PublicKey, error) {
	priv, pub, err := ecdsa.GenerateKey(g, rand)
	if err != nil {
		return nil, nil, err
	}
	return &PrivateKey{Group: g, D: priv.D}, &PublicKey{Group: g, Qx: pub.Qx, Qy: pub.Qy}, nil
}

func hashToInt(hash []byte, q *big.Int) *big.Int {
	e := new(big.Int).SetBytes(hash)
	e.Mod(e, q)
	return e
}

// Sign computes a GOST signature over hash under priv. Unlike EC-DSA, s is
// computed directly from k and r without inverting k: s = (r*d + k*e) mod
// q.
func Sign(rand io.Reader, priv *PrivateKey, hash []byte) (*Signature, error) {
	q := priv.Group.Q
	e := hashToInt(hash, q)
	if e.Sign() == 0 {
		e = big.NewInt(1)
	}

	gen, err := priv.Group.Generator()
	if err != nil {
		return nil, err
	}

	for {
		k, err := randScalar(rand, q)
		if err != nil {
			return nil, err
		}

		kp, err := gen.Mul(k)
		if err != nil {
			return nil, err
		}
		rx, _, err := kp.Affine()
		if err != nil {
			return nil, err
		}
		r := new(big.Int).Mod(rx, q)
		if r.Sign() == 0 {
			continue
		}

		rd := new(big.Int).Mul(r, priv.D)
		ke := new(big.Int).Mul(k, e)
		s := new(big.Int).Add(rd, ke)
		s.Mod(s, q)
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}
}

// Verify reports whether sig is a valid signature over hash under pub.
func Verify(pub *PublicKey, hash []byte, sig *Signature) (bool, error) {
	q := pub.Group.Q
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 {
		return false, nil
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return false, nil
	}

	onCurve, err := pub.Group.Curve.IsOnCurve(pub.Qx, pub.Qy)
	if err != nil {
		return false, err
	}
	if !onCurve {
		return false, ErrNotAPoint
	}

	e := hashToInt(hash, q)
	if e.Sign() == 0 {
		e = big.NewInt(1)
	}

	v, err := modInverse(e, q)
	if err != nil {
		return false, nil
	}

	z1 := new(big.Int).Mul(sig.S, v)
	z1.Mod(z1, q)
	z2 := new(big.Int).Mul(sig.R, v)
	z2.Neg(z2)
	z2.Mod(z2, q)

	gen, err := pub.Group.Generator()
	if err != nil {
		return false, err
	}
	qp, err := curve.NewAffinePoint(pub.Group.Curve, pub.Qx, pub.Qy)
	if err != nil {
		return false, err
	}

	p1, err := gen.Mul(z1)
	if err != nil {
		return false, err
	}
	p2, err := qp.Mul(z2)
	if err != nil {
		return false, err
	}
	sum, err := p1.Add(p2)
	if err != nil {
		return false, err
	}
	if sum.IsZero() {
		return false, nil
	}

	x, _, err := sum.Affine()
	if err != nil {
		return false, err
	}
	r := new(big.Int).Mod(x, q)

	return r.Cmp(sig.R) == 0, nil
}
