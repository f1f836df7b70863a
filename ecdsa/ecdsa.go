// Package ecdsa implements the X9.62/FIPS 186 elliptic-curve signature
// scheme: sign with s = k^-1*(e + d*r) mod q, verify by reconstructing
// r from c = s^-1.
package ecdsa

import (
	"errors"
	"io"
	"math/big"

	"github.com/ikle/goecc/curve"
)

// ErrNotAPoint is returned by Verify when the public key does not satisfy
// its group's curve equation.
var ErrNotAPoint = errors.New("ecdsa: public key is not a point on the curve")

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

// GenerateKey draws a private key uniformly from [1, Q-1] using rand as the
// entropy source (typically crypto/rand.Reader). It computes and returns
// the matching public key.
func GenerateKey(g *curve.Group, rand io.Reader) (*PrivateKey, *PublicKey, error) {
	d, err := randScalar(rand, g.Q)
	if err != nil {
		return nil, nil, err
	}

	gen, err := g.Generator()
	if err != nil {
		return nil, nil, err
	}
	q, err := gen.Mul(d)
	if err != nil {
		return nil, nil, err
	}
	qx, qy, err := q.Affine()
	if err != nil {
		return nil, nil, err
	}

	return &PrivateKey{Group: g, D: d}, &PublicKey{Group: g, Qx: qx, Qy: qy}, nil
}

// hashToInt reduces a digest to e = md mod q, with e = 0 patched to 1 by
// the callers. This deliberately skips the strict X9.62 "leftmost
// min(bitlen(q), bitlen(md)) bits" truncation; the reduction alone keeps
// sign and verify consistent for digests of any length.
func hashToInt(hash []byte, q *big.Int) *big.Int {
	e := new(big.Int).SetBytes(hash)
	e.Mod(e, q)
	return e
}

// Sign computes a signature over hash under priv. rand supplies the
// ephemeral scalar k on each retry; pass crypto/rand.Reader in production,
// or an injected deterministic source for reproducible signatures.
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

		kInv, err := modInverse(k, q)
		if err != nil {
			continue
		}

		dr := new(big.Int).Mul(priv.D, r)
		s := new(big.Int).Add(e, dr)
		s.Mul(s, kInv)
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

	c, err := modInverse(sig.S, q)
	if err != nil {
		return false, nil
	}

	u1 := new(big.Int).Mul(e, c)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, c)
	u2.Mod(u2, q)

	gen, err := pub.Group.Generator()
	if err != nil {
		return false, err
	}
	qp, err := curve.NewAffinePoint(pub.Group.Curve, pub.Qx, pub.Qy)
	if err != nil {
		return false, err
	}

	p1, err := gen.Mul(u1)
	if err != nil {
		return false, err
	}
	p2, err := qp.Mul(u2)
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
	v := new(big.Int).Mod(x, q)

	return v.Cmp(sig.R) == 0, nil
}
