package curve

import (
	"math/big"

	"github.com/ikle/goecc/fp"
)

// AffinePoint is a point (x, y) on a Curve, represented directly in the
// field coordinates used by the curve equation. inf distinguishes the point
// at infinity explicitly, rather than overloading (0, 0), which is a valid
// finite point on some curves.
type AffinePoint struct {
	curve *Curve
	x, y  *fp.Element
	inf   bool
}

// NewAffinePoint builds the point (x, y) on c. It does not check that the
// point lies on the curve; callers that need that guarantee should use
// Curve.IsOnCurve first, or Group.Validate for a generator.
func NewAffinePoint(c *Curve, x, y *big.Int) (*AffinePoint, error) {
	fx, err := fp.New(x, c.P)
	if err != nil {
		return nil, err
	}
	fy, err := fp.New(y, c.P)
	if err != nil {
		return nil, err
	}
	return &AffinePoint{curve: c, x: fx, y: fy}, nil
}

// InfinityAffine returns the point at infinity for c, represented in affine
// form.
func InfinityAffine(c *Curve) *AffinePoint {
	return &AffinePoint{curve: c, inf: true}
}

func (p *AffinePoint) IsZero() bool { return p.inf }

func (p *AffinePoint) Affine() (x, y *big.Int, err error) {
	if p.inf {
		return big.NewInt(0), big.NewInt(0), nil
	}
	return p.x.Int(), p.y.Int(), nil
}

func (p *AffinePoint) Curve() *Curve { return p.curve }

func (p *AffinePoint) isZero() bool { return p.IsZero() }

// double applies λ = (3x² + a) / (2y); x' = λ² - 2x; y' = λ(x - x') - y.
// Doubling a point with y = 0 (2-torsion) yields O, since 2y is then zero
// and not invertible.
func (p *AffinePoint) double() groupElement {
	if p.inf || p.y.IsZero() {
		return InfinityAffine(p.curve)
	}

	a, err := fp.New(p.curve.A, p.curve.P)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	x2, err := p.x.Mul(p.x)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	three := big.NewInt(3)
	num, err := x2.Mul(fp.MustNew(three, p.curve.P))
	if err != nil {
		return InfinityAffine(p.curve)
	}
	num, err = num.Add(a)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	twoY, err := p.y.Mul(fp.MustNew(big.NewInt(2), p.curve.P))
	if err != nil {
		return InfinityAffine(p.curve)
	}
	lambda, err := num.Div(twoY)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	lambda2, err := lambda.Mul(lambda)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	twoX, err := p.x.Mul(fp.MustNew(big.NewInt(2), p.curve.P))
	if err != nil {
		return InfinityAffine(p.curve)
	}
	xr, err := lambda2.Sub(twoX)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	xDiff, err := p.x.Sub(xr)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	yr, err := lambda.Mul(xDiff)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	yr, err = yr.Sub(p.y)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	return &AffinePoint{curve: p.curve, x: xr, y: yr}
}

func (p *AffinePoint) Double() Point {
	return p.double().(Point)
}

// add dispatches on the four cases from the group law: O + P = P;
// x1 == x2 && y1 == y2 -> double; x1 == x2 && y1 != y2 -> O (vertical
// line); otherwise the generic chord formula λ = (y2-y1)/(x2-x1).
func (p *AffinePoint) add(o groupElement) groupElement {
	q, ok := o.(*AffinePoint)
	if !ok {
		// o is the package's identity value.
		if o.isZero() {
			return p
		}
		return o.add(p)
	}

	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	if !p.curve.Equal(q.curve) {
		return InfinityAffine(p.curve)
	}

	if p.x.Equal(q.x) {
		if p.y.Equal(q.y) {
			return p.double()
		}
		return InfinityAffine(p.curve)
	}

	xDiff, err := q.x.Sub(p.x)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	yDiff, err := q.y.Sub(p.y)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	lambda, err := yDiff.Div(xDiff)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	lambda2, err := lambda.Mul(lambda)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	xr, err := lambda2.Sub(p.x)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	xr, err = xr.Sub(q.x)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	xDiffR, err := p.x.Sub(xr)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	yr, err := lambda.Mul(xDiffR)
	if err != nil {
		return InfinityAffine(p.curve)
	}
	yr, err = yr.Sub(p.y)
	if err != nil {
		return InfinityAffine(p.curve)
	}

	return &AffinePoint{curve: p.curve, x: xr, y: yr}
}

// Add is the exported, validating wrapper around add: it rejects combining
// points from different curves rather than silently collapsing to O.
func (p *AffinePoint) Add(other Point) (Point, error) {
	if other == nil || other.IsZero() {
		return p, nil
	}
	if !p.inf && !p.curve.Equal(other.Curve()) {
		return nil, ErrCurveMismatch
	}
	q, ok := other.(*AffinePoint)
	if !ok {
		ax, ay, err := other.Affine()
		if err != nil {
			return nil, err
		}
		q, err = NewAffinePoint(p.curve, ax, ay)
		if err != nil {
			return nil, err
		}
	}
	if !p.inf && !q.inf && !p.curve.Equal(q.curve) {
		return nil, ErrCurveMismatch
	}
	return p.add(q).(Point), nil
}

func (p *AffinePoint) Mul(d *big.Int) (Point, error) {
	if d.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	return doubleAndAdd(p, d).(Point), nil
}

func (p *AffinePoint) MulConstantTime(d *big.Int) (Point, error) {
	if d.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	return ladder(p, d).(Point), nil
}

func (p *AffinePoint) sealed() groupElement { return p }

// Shift returns the result of n successive doublings of P, i.e. 2^n * P,
// computed as Mul by 2^n. The scalar multipliers do not call it. A shift of
// less than 1 fails with ErrInvalidScalar.
func (p *AffinePoint) Shift(n int) (Point, error) {
	if n < 1 {
		return nil, ErrInvalidScalar
	}
	return p.Mul(big.NewInt(0).Lsh(big.NewInt(1), uint(n)))
}
