package curve

import "math/big"

// Point is satisfied by AffinePoint, JacobianPoint, and the library's
// internal identity element. It carries a sealed (unexported) method so
// that only this package may introduce new representations; external
// callers consume the exported surface.
//
// Each concrete type carries its own coordinate system and formula
// selection, and Add/Double/Mul dispatch through this interface, so a
// caller picks a representation once at construction time and every
// subsequent operation follows from it.
type Point interface {
	// IsZero reports whether this value is the point at infinity O.
	IsZero() bool

	// Affine returns the point's affine coordinates. For Jacobian
	// representations this triggers the lazy scale-to-affine conversion.
	Affine() (x, y *big.Int, err error)

	// Curve returns the curve this point is defined over, or nil for O.
	Curve() *Curve

	// Add returns the sum of the receiver and other. It fails with
	// ErrCurveMismatch if both operands are non-zero points on different
	// curves.
	Add(other Point) (Point, error)

	// Double returns twice the receiver. It never fails.
	Double() Point

	// Mul returns d times the receiver using variable-time double-and-add.
	// A negative d fails with ErrInvalidScalar.
	Mul(d *big.Int) (Point, error)

	// MulConstantTime returns d times the receiver using the regular
	// Montgomery ladder, whose trip count and operation pattern depend
	// only on d's bit length. A negative d fails with ErrInvalidScalar.
	MulConstantTime(d *big.Int) (Point, error)

	// sealed prevents external packages from implementing Point.
	sealed() groupElement
}

// groupElement is the minimal capability the generic scalar-multiplication
// strategies need: an additive group with a distinguished identity. It has
// no notion of errors, because within a single Mul/MulConstantTime call
// every operand shares one representation and one curve by construction.
type groupElement interface {
	isZero() bool
	add(groupElement) groupElement
	double() groupElement
}

// identity is the curve- and representation-agnostic point at infinity, O:
// adding it to anything returns the other operand, and it is idempotent
// under doubling.
type identity struct{}

func (identity) isZero() bool                    { return true }
func (identity) add(o groupElement) groupElement { return o }
func (identity) double() groupElement            { return identity{} }

func (identity) IsZero() bool { return true }

func (identity) Affine() (x, y *big.Int, err error) {
	return big.NewInt(0), big.NewInt(0), nil
}

func (identity) Curve() *Curve { return nil }

func (o identity) Add(other Point) (Point, error) {
	if other == nil {
		return o, nil
	}
	return other, nil
}

func (o identity) Double() Point { return o }

func (o identity) Mul(d *big.Int) (Point, error) {
	if d.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	return o, nil
}

func (o identity) MulConstantTime(d *big.Int) (Point, error) {
	return o.Mul(d)
}

func (o identity) sealed() groupElement { return o }

// Identity returns the point at infinity, O.
func Identity() Point { return identity{} }

// doubleAndAdd implements the variable-time scalar-multiplication strategy
// (C4): Q <- O; N <- P; while d != 0, Q += N if d's low bit is set, N <- 2N,
// d >>= 1. It is written once against groupElement so it applies unchanged
// to affine and Jacobian points alike.
func doubleAndAdd(p groupElement, d *big.Int) groupElement {
	var q groupElement = identity{}
	n := p
	d = new(big.Int).Set(d)

	for d.Sign() != 0 {
		if d.Bit(0) == 1 {
			q = q.add(n)
		}
		n = n.double()
		d.Rsh(d, 1)
	}

	return q
}

// ladder implements the regular Montgomery-ladder strategy (C4): the trip
// count and per-iteration operation pattern depend only on d's bit length,
// not on the value of d.
func ladder(p groupElement, d *big.Int) groupElement {
	var r0 groupElement = identity{}
	r1 := p

	for i := d.BitLen() - 1; i >= 0; i-- {
		if d.Bit(i) == 0 {
			r1 = r0.add(r1)
			r0 = r0.double()
		} else {
			r0 = r0.add(r1)
			r1 = r1.double()
		}
	}

	return r0
}
