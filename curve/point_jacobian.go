package curve

import (
	"math/big"

	"github.com/ikle/goecc/fp"
)

// JacobianPoint is a point (X, Y, Z) representing the affine point
// (X/Z^2, Y/Z^3). secure forces every doubling and addition through the
// always-generic 2007 Bernstein-Lange formulas (dbl_2007_bl / add_2007_bl),
// skipping the Z==1 / Z1==Z2 shortcuts that would otherwise leak scalar
// bits through the operation trace.
type JacobianPoint struct {
	curve   *Curve
	x, y, z *fp.Element
	secure  bool
}

// NewJacobianPoint builds the point (x, y, 1) on c, i.e. an affine point
// lifted into Jacobian coordinates.
func NewJacobianPoint(c *Curve, x, y *big.Int, secure bool) (*JacobianPoint, error) {
	fx, err := fp.New(x, c.P)
	if err != nil {
		return nil, err
	}
	fy, err := fp.New(y, c.P)
	if err != nil {
		return nil, err
	}
	fz, err := fp.New(big.NewInt(1), c.P)
	if err != nil {
		return nil, err
	}
	return &JacobianPoint{curve: c, x: fx, y: fy, z: fz, secure: secure}, nil
}

// NewJacobianPointXYZ builds a point directly from a Jacobian
// representative (X, Y, Z) encoding the affine point (X/Z^2, Y/Z^3).
// Z = 0 is the point at infinity. Representatives are not canonical: any
// non-zero lambda gives an equivalent (lambda^2*X, lambda^3*Y, lambda*Z).
func NewJacobianPointXYZ(c *Curve, x, y, z *big.Int, secure bool) (*JacobianPoint, error) {
	fx, err := fp.New(x, c.P)
	if err != nil {
		return nil, err
	}
	fy, err := fp.New(y, c.P)
	if err != nil {
		return nil, err
	}
	fz, err := fp.New(z, c.P)
	if err != nil {
		return nil, err
	}
	return &JacobianPoint{curve: c, x: fx, y: fy, z: fz, secure: secure}, nil
}

// InfinityJacobian returns the point at infinity for c, represented with
// Z == 0.
func InfinityJacobian(c *Curve, secure bool) *JacobianPoint {
	return &JacobianPoint{
		curve:  c,
		x:      fp.MustNew(big.NewInt(1), c.P),
		y:      fp.MustNew(big.NewInt(1), c.P),
		z:      fp.MustNew(big.NewInt(0), c.P),
		secure: secure,
	}
}

func (p *JacobianPoint) IsZero() bool { return p.z.IsZero() }
func (p *JacobianPoint) isZero() bool { return p.IsZero() }
func (p *JacobianPoint) Curve() *Curve { return p.curve }

// Affine performs the scale-to-affine conversion: a = 1/z, x' = x*a^2,
// y' = y*a^3. The inversion is skipped entirely when z is already 0 or 1.
func (p *JacobianPoint) Affine() (x, y *big.Int, err error) {
	if p.IsZero() {
		return big.NewInt(0), big.NewInt(0), nil
	}
	if p.z.Int().Cmp(one) == 0 {
		return p.x.Int(), p.y.Int(), nil
	}

	a, err := p.z.Inverse()
	if err != nil {
		return nil, nil, err
	}
	aa, err := a.Mul(a)
	if err != nil {
		return nil, nil, err
	}
	aaa, err := aa.Mul(a)
	if err != nil {
		return nil, nil, err
	}
	xr, err := p.x.Mul(aa)
	if err != nil {
		return nil, nil, err
	}
	yr, err := p.y.Mul(aaa)
	if err != nil {
		return nil, nil, err
	}
	return xr.Int(), yr.Int(), nil
}

var one = big.NewInt(1)

// mdbl_2007_bl: doubling shortcut valid when Z1 == 1.
func mdbl2007bl(c *Curve, x1, y1 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, error) {
	p := c.P
	two := fp.MustNew(big.NewInt(2), p)
	three := fp.MustNew(big.NewInt(3), p)
	eight := fp.MustNew(big.NewInt(8), p)
	a := fp.MustNew(c.A, p)

	xx, err := x1.Mul(x1)
	if err != nil {
		return nil, nil, nil, err
	}
	yy, err := y1.Mul(y1)
	if err != nil {
		return nil, nil, nil, err
	}
	yyyy, err := yy.Mul(yy)
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := x1.Add(yy)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Mul(s)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Sub(xx)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Sub(yyyy)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}

	threeXX, err := xx.Mul(three)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := threeXX.Add(a)
	if err != nil {
		return nil, nil, nil, err
	}

	twoS, err := s.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}
	mm, err := m.Mul(m)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := mm.Sub(twoS)
	if err != nil {
		return nil, nil, nil, err
	}

	x3 := t

	sMinusT, err := s.Sub(t)
	if err != nil {
		return nil, nil, nil, err
	}
	mTimes, err := m.Mul(sMinusT)
	if err != nil {
		return nil, nil, nil, err
	}
	eightYyyy, err := yyyy.Mul(eight)
	if err != nil {
		return nil, nil, nil, err
	}
	y3, err := mTimes.Sub(eightYyyy)
	if err != nil {
		return nil, nil, nil, err
	}

	z3, err := y1.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}

	return x3, y3, z3, nil
}

// dbl_2007_bl: the always-generic doubling formula, used whenever Z1 != 1
// or the point is handled in constant-time (secure) mode.
func dbl2007bl(c *Curve, x1, y1, z1 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, error) {
	p := c.P
	two := fp.MustNew(big.NewInt(2), p)
	three := fp.MustNew(big.NewInt(3), p)
	eight := fp.MustNew(big.NewInt(8), p)
	a := fp.MustNew(c.A, p)

	xx, err := x1.Mul(x1)
	if err != nil {
		return nil, nil, nil, err
	}
	yy, err := y1.Mul(y1)
	if err != nil {
		return nil, nil, nil, err
	}
	yyyy, err := yy.Mul(yy)
	if err != nil {
		return nil, nil, nil, err
	}
	zz, err := z1.Mul(z1)
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := x1.Add(yy)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Mul(s)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Sub(xx)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Sub(yyyy)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = s.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}

	zzzz, err := zz.Mul(zz)
	if err != nil {
		return nil, nil, nil, err
	}
	aZzzz, err := a.Mul(zzzz)
	if err != nil {
		return nil, nil, nil, err
	}
	threeXX, err := xx.Mul(three)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := threeXX.Add(aZzzz)
	if err != nil {
		return nil, nil, nil, err
	}

	twoS, err := s.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}
	mm, err := m.Mul(m)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := mm.Sub(twoS)
	if err != nil {
		return nil, nil, nil, err
	}
	x3 := t

	sMinusT, err := s.Sub(t)
	if err != nil {
		return nil, nil, nil, err
	}
	mTimes, err := m.Mul(sMinusT)
	if err != nil {
		return nil, nil, nil, err
	}
	eightYyyy, err := yyyy.Mul(eight)
	if err != nil {
		return nil, nil, nil, err
	}
	y3, err := mTimes.Sub(eightYyyy)
	if err != nil {
		return nil, nil, nil, err
	}

	yz, err := y1.Mul(z1)
	if err != nil {
		return nil, nil, nil, err
	}
	z3, err := yz.Mul(two)
	if err != nil {
		return nil, nil, nil, err
	}

	return x3, y3, z3, nil
}

// mmadd_2007_bl: addition shortcut valid when Z1 == Z2 == 1.
func mmadd2007bl(p *Curve, x1, y1, x2, y2 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, bool, error) {
	fld := p.P
	two := fp.MustNew(big.NewInt(2), fld)

	h, err := x2.Sub(x1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	hh, err := h.Mul(h)
	if err != nil {
		return nil, nil, nil, false, err
	}
	i, err := hh.Mul(fp.MustNew(big.NewInt(4), fld))
	if err != nil {
		return nil, nil, nil, false, err
	}
	j, err := h.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}
	r, err := y2.Sub(y1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	r, err = r.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if h.IsZero() && r.IsZero() {
		return nil, nil, nil, true, nil
	}

	v, err := x1.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}

	rr, err := r.Mul(r)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoV, err := v.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err := rr.Sub(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err = x3.Sub(twoV)
	if err != nil {
		return nil, nil, nil, false, err
	}

	vMinusX3, err := v.Sub(x3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	rTimes, err := r.Mul(vMinusX3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoY1J, err := y1.Mul(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoY1J, err = twoY1J.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	y3, err := rTimes.Sub(twoY1J)
	if err != nil {
		return nil, nil, nil, false, err
	}

	z3, err := h.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}

	return x3, y3, z3, false, nil
}

// zadd_2007_m: Meloni's addition for Z1 == Z2 (but not necessarily 1).
func zadd2007m(z *fp.Element, x1, y1, x2, y2 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, bool, error) {
	a, err := x1.Sub(x2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	aa, err := a.Mul(a)
	if err != nil {
		return nil, nil, nil, false, err
	}
	c, err := y1.Sub(y2)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if a.IsZero() && c.IsZero() {
		return nil, nil, nil, true, nil
	}

	b, err := x1.Mul(aa)
	if err != nil {
		return nil, nil, nil, false, err
	}
	d, err := x2.Mul(aa)
	if err != nil {
		return nil, nil, nil, false, err
	}

	cc, err := c.Mul(c)
	if err != nil {
		return nil, nil, nil, false, err
	}
	bPlusD, err := b.Add(d)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err := cc.Sub(bPlusD)
	if err != nil {
		return nil, nil, nil, false, err
	}

	bMinusX3, err := b.Sub(x3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	cTimes, err := c.Mul(bMinusX3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	bMinusD, err := b.Sub(d)
	if err != nil {
		return nil, nil, nil, false, err
	}
	y1Times, err := y1.Mul(bMinusD)
	if err != nil {
		return nil, nil, nil, false, err
	}
	y3, err := cTimes.Sub(y1Times)
	if err != nil {
		return nil, nil, nil, false, err
	}

	za, err := z.Mul(a)
	if err != nil {
		return nil, nil, nil, false, err
	}

	return x3, y3, za, false, nil
}

// madd_2007_bl: addition shortcut valid when Z2 == 1.
func madd2007bl(c *Curve, x1, y1, z1, x2, y2 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, bool, error) {
	p := c.P
	two := fp.MustNew(big.NewInt(2), p)

	z1z1, err := z1.Mul(z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	u2, err := x2.Mul(z1z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s2, err := y2.Mul(z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s2, err = s2.Mul(z1z1)
	if err != nil {
		return nil, nil, nil, false, err
	}

	h, err := u2.Sub(x1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	hh, err := h.Mul(h)
	if err != nil {
		return nil, nil, nil, false, err
	}
	i, err := hh.Mul(fp.MustNew(big.NewInt(4), p))
	if err != nil {
		return nil, nil, nil, false, err
	}
	j, err := h.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}

	r, err := s2.Sub(y1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	r, err = r.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if h.IsZero() && r.IsZero() {
		return nil, nil, nil, true, nil
	}

	v, err := x1.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}

	rr, err := r.Mul(r)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoV, err := v.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err := rr.Sub(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err = x3.Sub(twoV)
	if err != nil {
		return nil, nil, nil, false, err
	}

	vMinusX3, err := v.Sub(x3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	rTimes, err := r.Mul(vMinusX3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoY1J, err := y1.Mul(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoY1J, err = twoY1J.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	y3, err := rTimes.Sub(twoY1J)
	if err != nil {
		return nil, nil, nil, false, err
	}

	z1PlusH, err := z1.Add(h)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z1PlusH, err = z1PlusH.Mul(z1PlusH)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z1z1PlusHh, err := z1z1.Add(hh)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z3, err := z1PlusH.Sub(z1z1PlusHh)
	if err != nil {
		return nil, nil, nil, false, err
	}

	return x3, y3, z3, false, nil
}

// add_2007_bl: the always-generic addition formula, used whenever neither
// of the shortcut preconditions (Z2==1, or Z1==Z2) holds, or whenever a
// point is handled in constant-time (secure) mode. Z1==1 with Z2!=1 also
// takes this path.
func add2007bl(x1, y1, z1, x2, y2, z2 *fp.Element) (*fp.Element, *fp.Element, *fp.Element, bool, error) {
	two := fp.MustNew(big.NewInt(2), z1.P())

	z1z1, err := z1.Mul(z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z2z2, err := z2.Mul(z2)
	if err != nil {
		return nil, nil, nil, false, err
	}

	u1, err := x1.Mul(z2z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	u2, err := x2.Mul(z1z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s1, err := y1.Mul(z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s1, err = s1.Mul(z2z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s2, err := y2.Mul(z1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s2, err = s2.Mul(z1z1)
	if err != nil {
		return nil, nil, nil, false, err
	}

	h, err := u2.Sub(u1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	hh, err := h.Add(h)
	if err != nil {
		return nil, nil, nil, false, err
	}
	i, err := hh.Mul(hh)
	if err != nil {
		return nil, nil, nil, false, err
	}
	j, err := h.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}

	r, err := s2.Sub(s1)
	if err != nil {
		return nil, nil, nil, false, err
	}
	r, err = r.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}

	if h.IsZero() && r.IsZero() {
		return nil, nil, nil, true, nil
	}

	v, err := u1.Mul(i)
	if err != nil {
		return nil, nil, nil, false, err
	}

	rr, err := r.Mul(r)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoV, err := v.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err := rr.Sub(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	x3, err = x3.Sub(twoV)
	if err != nil {
		return nil, nil, nil, false, err
	}

	vMinusX3, err := v.Sub(x3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	rTimes, err := r.Mul(vMinusX3)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoS1J, err := s1.Mul(j)
	if err != nil {
		return nil, nil, nil, false, err
	}
	twoS1J, err = twoS1J.Mul(two)
	if err != nil {
		return nil, nil, nil, false, err
	}
	y3, err := rTimes.Sub(twoS1J)
	if err != nil {
		return nil, nil, nil, false, err
	}

	z1PlusZ2, err := z1.Add(z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z1PlusZ2, err = z1PlusZ2.Mul(z1PlusZ2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z1z1PlusZ2z2, err := z1z1.Add(z2z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	zDiff, err := z1PlusZ2.Sub(z1z1PlusZ2z2)
	if err != nil {
		return nil, nil, nil, false, err
	}
	z3, err := zDiff.Mul(h)
	if err != nil {
		return nil, nil, nil, false, err
	}

	return x3, y3, z3, false, nil
}

// dbl dispatches between the Z1==1 shortcut and the generic formula;
// secure points always take the generic path.
func (p *JacobianPoint) dbl() (*fp.Element, *fp.Element, *fp.Element, error) {
	if !p.secure && p.z.Int().Cmp(one) == 0 {
		return mdbl2007bl(p.curve, p.x, p.y)
	}
	return dbl2007bl(p.curve, p.x, p.y, p.z)
}

func (p *JacobianPoint) double() groupElement {
	if p.IsZero() {
		return p
	}
	x3, y3, z3, err := p.dbl()
	if err != nil || z3.IsZero() {
		return InfinityJacobian(p.curve, p.secure)
	}
	return &JacobianPoint{curve: p.curve, x: x3, y: y3, z: z3, secure: p.secure}
}

func (p *JacobianPoint) Double() Point {
	return p.double().(Point)
}

// addJacobian dispatches across the four formula cases: Z2==1 (mmadd if
// Z1==1 too, else madd); Z1==Z2 (zadd); otherwise the generic add_2007_bl.
// Equal operands fall back to the doubling path, and operands that are
// negatives of each other collapse to infinity. Secure points skip every
// shortcut.
func (p *JacobianPoint) addJacobian(q *JacobianPoint) groupElement {
	if p.IsZero() {
		return q
	}
	if q.IsZero() {
		return p
	}

	var x3, y3, z3 *fp.Element
	var degenerate bool
	var err error

	switch {
	case !p.secure && !q.secure && q.z.Int().Cmp(one) == 0 && p.z.Int().Cmp(one) == 0:
		x3, y3, z3, degenerate, err = mmadd2007bl(p.curve, p.x, p.y, q.x, q.y)
	case !p.secure && !q.secure && q.z.Int().Cmp(one) == 0:
		x3, y3, z3, degenerate, err = madd2007bl(p.curve, p.x, p.y, p.z, q.x, q.y)
	case !p.secure && !q.secure && p.z.Equal(q.z):
		x3, y3, z3, degenerate, err = zadd2007m(p.z, p.x, p.y, q.x, q.y)
	default:
		x3, y3, z3, degenerate, err = add2007bl(p.x, p.y, p.z, q.x, q.y, q.z)
	}

	if err != nil {
		return InfinityJacobian(p.curve, p.secure)
	}
	if degenerate {
		return p.double()
	}
	if z3.IsZero() {
		return InfinityJacobian(p.curve, p.secure)
	}

	return &JacobianPoint{curve: p.curve, x: x3, y: y3, z: z3, secure: p.secure}
}

func (p *JacobianPoint) add(o groupElement) groupElement {
	q, ok := o.(*JacobianPoint)
	if !ok {
		if o.isZero() {
			return p
		}
		return o.add(p)
	}
	return p.addJacobian(q)
}

// Add is the exported, validating wrapper around add.
func (p *JacobianPoint) Add(other Point) (Point, error) {
	if other == nil || other.IsZero() {
		return p, nil
	}
	if !p.IsZero() && !p.curve.Equal(other.Curve()) {
		return nil, ErrCurveMismatch
	}
	q, ok := other.(*JacobianPoint)
	if !ok {
		ax, ay, err := other.Affine()
		if err != nil {
			return nil, err
		}
		q, err = NewJacobianPoint(p.curve, ax, ay, p.secure)
		if err != nil {
			return nil, err
		}
	}
	if !p.IsZero() && !q.IsZero() && !p.curve.Equal(q.curve) {
		return nil, ErrCurveMismatch
	}
	return p.add(q).(Point), nil
}

func (p *JacobianPoint) Mul(d *big.Int) (Point, error) {
	if d.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	return doubleAndAdd(p, d).(Point), nil
}

func (p *JacobianPoint) MulConstantTime(d *big.Int) (Point, error) {
	if d.Sign() < 0 {
		return nil, ErrInvalidScalar
	}
	return ladder(p, d).(Point), nil
}

func (p *JacobianPoint) sealed() groupElement { return p }
