// Package curve implements group arithmetic on short-Weierstrass curves
// y² = x³ + ax + b over a prime field, in both affine and Jacobian
// coordinates, plus the two scalar-multiplication strategies (variable-time
// double-and-add and the regular Montgomery ladder) that operate uniformly
// over either representation.
package curve

import (
	"errors"
	"math/big"

	"github.com/ikle/goecc/fp"
)

// ErrCurveMismatch is returned when combining points defined over different
// curves.
var ErrCurveMismatch = errors.New("curve: points belong to different curves")

// ErrInvalidScalar is returned for scalars disallowed at the public
// boundary: negative multipliers, and a zero shift count.
var ErrInvalidScalar = errors.New("curve: invalid scalar")

// ErrPointNotOnCurve is returned by Validate when a point fails its curve
// equation.
var ErrPointNotOnCurve = errors.New("curve: point is not on the curve")

// Curve is the tuple (a, b, p) defining y² = x³ + ax + b (mod p).
//
// P = 0 is a legacy sentinel meaning "symbolic, unreduced integer
// arithmetic" and is accepted only for documentation/printing purposes via
// String; every constructor that produces usable Points requires P > 0.
type Curve struct {
	A, B, P *big.Int
}

// New builds a Curve. It does not validate that P is prime, matching the
// registry's "trusted parameters" contract (see curves.Lookup).
func New(a, b, p *big.Int) *Curve {
	return &Curve{A: new(big.Int).Set(a), B: new(big.Int).Set(b), P: new(big.Int).Set(p)}
}

// Equal reports whether two curves describe the same equation over the same
// field.
func (c *Curve) Equal(o *Curve) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.A.Cmp(o.A) == 0 && c.B.Cmp(o.B) == 0 && c.P.Cmp(o.P) == 0
}

// String renders the curve equation, switching to the symbolic form used for
// documentation when P is the zero sentinel.
func (c *Curve) String() string {
	eqn := "y^2 = x^3 + " + c.A.String() + "x + " + c.B.String()
	if c.P.Sign() == 0 {
		return eqn
	}
	return eqn + " (mod " + c.P.String() + ")"
}

// polynomial evaluates x³ + ax + b (mod P).
func (c *Curve) polynomial(x *fp.Element) (*fp.Element, error) {
	a, err := fp.New(c.A, c.P)
	if err != nil {
		return nil, err
	}
	b, err := fp.New(c.B, c.P)
	if err != nil {
		return nil, err
	}

	x2, err := x.Mul(x)
	if err != nil {
		return nil, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return nil, err
	}
	ax, err := a.Mul(x)
	if err != nil {
		return nil, err
	}
	sum, err := x3.Add(ax)
	if err != nil {
		return nil, err
	}
	return sum.Add(b)
}

// IsOnCurve reports whether (x, y) satisfies y² = x³ + ax + b (mod P).
func (c *Curve) IsOnCurve(x, y *big.Int) (bool, error) {
	fx, err := fp.New(x, c.P)
	if err != nil {
		return false, err
	}
	fy, err := fp.New(y, c.P)
	if err != nil {
		return false, err
	}

	rhs, err := c.polynomial(fx)
	if err != nil {
		return false, err
	}
	lhs, err := fy.Mul(fy)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// Group is a Curve plus a generator G = (Gx, Gy) and the order Q of the
// subgroup it generates. Construction does not validate that G lies on the
// curve or that Q·G = O; see Validate for an optional debug check and
// curves.Lookup for the trusted registry that normally supplies Groups.
type Group struct {
	Curve  *Curve
	Gx, Gy *big.Int
	Q      *big.Int
}

// Validate checks that G lies on Curve and that Q·G = O. Constructing a
// Group does not call it; curves.Lookup runs it once per registered group on
// first lookup, and callers may run it on user-supplied parameters.
func (g *Group) Validate() error {
	onCurve, err := g.Curve.IsOnCurve(g.Gx, g.Gy)
	if err != nil {
		return err
	}
	if !onCurve {
		return ErrPointNotOnCurve
	}

	gen, err := NewAffinePoint(g.Curve, g.Gx, g.Gy)
	if err != nil {
		return err
	}
	qg, err := gen.Mul(g.Q)
	if err != nil {
		return err
	}
	if !qg.IsZero() {
		return errors.New("curve: q*G is not the identity")
	}
	return nil
}

// Generator returns the affine representation of the group's base point.
func (g *Group) Generator() (*AffinePoint, error) {
	return NewAffinePoint(g.Curve, g.Gx, g.Gy)
}
