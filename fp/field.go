// Package fp implements arithmetic in a prime finite field F_p, represented
// with arbitrary-precision integers.
//
// Every Element carries its own modulus, and every operation returns a
// freshly constructed Element; values are immutable once built. Combining
// two elements defined over different moduli is an error rather than a
// silent truncation.
package fp

import (
	"errors"
	"math/big"
)

// ErrZeroModulus is returned by New when p = 0.
var ErrZeroModulus = errors.New("fp: modulus cannot be zero")

// ErrIncompatibleModulus is returned when two elements with different moduli
// are combined.
var ErrIncompatibleModulus = errors.New("fp: incompatible modulus")

// ErrNotInvertible is returned by Inverse when the element shares a common
// factor with the modulus (in particular, when it is zero).
var ErrNotInvertible = errors.New("fp: value is not invertible")

// Element is a value in [0, p) for some modulus p > 0.
type Element struct {
	x *big.Int
	p *big.Int
}

// New reduces x into [0, p) and returns the resulting Element. It fails with
// ErrZeroModulus if p is zero.
func New(x, p *big.Int) (*Element, error) {
	if p.Sign() == 0 {
		return nil, ErrZeroModulus
	}

	v := new(big.Int).Mod(x, p)
	return &Element{x: v, p: new(big.Int).Set(p)}, nil
}

// MustNew is like New but panics on error; it is meant for package-level
// constant tables where p is known to be non-zero.
func MustNew(x, p *big.Int) *Element {
	e, err := New(x, p)
	if err != nil {
		panic(err)
	}
	return e
}

// Int returns the residue as a non-negative integer less than P.
func (e *Element) Int() *big.Int {
	return new(big.Int).Set(e.x)
}

// P returns the modulus.
func (e *Element) P() *big.Int {
	return new(big.Int).Set(e.p)
}

func (e *Element) validate(o *Element) error {
	if e.p.Cmp(o.p) != 0 {
		return ErrIncompatibleModulus
	}
	return nil
}

func (e *Element) reduced(v *big.Int) *Element {
	v.Mod(v, e.p)
	return &Element{x: v, p: e.p}
}

// Add returns e + o (mod p).
func (e *Element) Add(o *Element) (*Element, error) {
	if err := e.validate(o); err != nil {
		return nil, err
	}
	return e.reduced(new(big.Int).Add(e.x, o.x)), nil
}

// Sub returns e - o (mod p).
func (e *Element) Sub(o *Element) (*Element, error) {
	if err := e.validate(o); err != nil {
		return nil, err
	}
	return e.reduced(new(big.Int).Sub(e.x, o.x)), nil
}

// Mul returns e * o (mod p).
func (e *Element) Mul(o *Element) (*Element, error) {
	if err := e.validate(o); err != nil {
		return nil, err
	}
	return e.reduced(new(big.Int).Mul(e.x, o.x)), nil
}

// Neg returns -e (mod p), i.e. p - e.x reduced into [0, p).
func (e *Element) Neg() *Element {
	return e.reduced(new(big.Int).Neg(e.x))
}

// Shl shifts the underlying integer left by n bits and reduces the result
// mod p. The shift may grow the integer before reduction; it is not a
// rotation within the field.
func (e *Element) Shl(n uint) *Element {
	return e.reduced(new(big.Int).Lsh(e.x, n))
}

// Shr shifts the underlying integer right by n bits and reduces the result
// mod p.
func (e *Element) Shr(n uint) *Element {
	return e.reduced(new(big.Int).Rsh(e.x, n))
}

// Pow returns e raised to the (possibly negative) power n. Pow(0) of zero
// returns 1, following the standard convention. A negative n computes
// Pow(-n) and inverts the result.
func (e *Element) Pow(n *big.Int) (*Element, error) {
	if n.Sign() >= 0 {
		return e.reduced(new(big.Int).Exp(e.x, n, e.p)), nil
	}

	pos, err := e.Pow(new(big.Int).Neg(n))
	if err != nil {
		return nil, err
	}
	return pos.Inverse()
}

// Inverse computes the multiplicative inverse of e via the extended
// Euclidean algorithm on (p, e.x): it finds (gcd, v) such that
// v*e.x + u*p = gcd for some u, and returns v mod p when gcd = 1.
// Zero is never invertible; ErrNotInvertible is returned in that case, and
// more generally whenever gcd(e.x, p) != 1.
func (e *Element) Inverse() (*Element, error) {
	g, v := egcd(e.p, e.x)
	if g.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}

	if v.Sign() < 0 {
		v.Add(v, e.p)
	}
	return &Element{x: v, p: e.p}, nil
}

// Div returns e / o, i.e. e * o.Inverse().
func (e *Element) Div(o *Element) (*Element, error) {
	if err := e.validate(o); err != nil {
		return nil, err
	}
	inv, err := o.Inverse()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv)
}

// Equal reports whether e and o denote the same residue modulo the same p.
func (e *Element) Equal(o *Element) bool {
	return e.p.Cmp(o.p) == 0 && e.x.Cmp(o.x) == 0
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	return e.x.Sign() == 0
}

// String renders the element as "x (mod p)".
func (e *Element) String() string {
	return e.x.String() + " (mod " + e.p.String() + ")"
}

var one = big.NewInt(1)

// egcd runs the classic (non-binary) extended Euclidean algorithm on (a, b)
// and returns (gcd(a, b), v) such that v*b + u*a = gcd(a, b) for some u.
func egcd(a, b *big.Int) (*big.Int, *big.Int) {
	v, u := big.NewInt(0), big.NewInt(1)
	a, b = new(big.Int).Set(a), new(big.Int).Set(b)

	for b.Sign() != 0 {
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))

		a, b = b, r

		qu := new(big.Int).Mul(q, u)
		v, u = u, v.Sub(v, qu)
	}

	return a, v
}
