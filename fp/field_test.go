package fp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewReducesIntoRange(t *testing.T) {
	e, err := New(big.NewInt(23), big.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(2), e.Int())
}

func TestNewZeroModulus(t *testing.T) {
	_, err := New(big.NewInt(1), big.NewInt(0))
	require.ErrorIs(t, err, ErrZeroModulus)
}

func TestIncompatibleModulus(t *testing.T) {
	a := MustNew(big.NewInt(1), big.NewInt(5))
	b := MustNew(big.NewInt(1), big.NewInt(7))
	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrIncompatibleModulus)
}

func TestInverseKnownValues(t *testing.T) {
	// 3 * 4 = 12 = 1 (mod 11)
	e := MustNew(big.NewInt(3), big.NewInt(11))
	inv, err := e.Inverse()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(4), inv.Int())
}

func TestInverseOfZero(t *testing.T) {
	e := MustNew(big.NewInt(0), big.NewInt(11))
	_, err := e.Inverse()
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestInverseNotCoprime(t *testing.T) {
	// gcd(6, 9) = 3 != 1
	e := MustNew(big.NewInt(6), big.NewInt(9))
	_, err := e.Inverse()
	require.ErrorIs(t, err, ErrNotInvertible)
}

// primes used as field moduli for the property tests below. All are prime.
var testPrimes = []int64{11, 13, 97, 65537}

func TestFieldAxioms(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := big.NewInt(testPrimes[rapid.IntRange(0, len(testPrimes)-1).Draw(t, "pIdx").(int)])
		xi := rapid.Int64Range(-1000, 1000).Draw(t, "x").(int64)
		yi := rapid.Int64Range(-1000, 1000).Draw(t, "y").(int64)
		zi := rapid.Int64Range(-1000, 1000).Draw(t, "z").(int64)

		x := MustNew(big.NewInt(xi), p)
		y := MustNew(big.NewInt(yi), p)
		z := MustNew(big.NewInt(zi), p)

		// Associativity of addition.
		xy, err := x.Add(y)
		require.NoError(t, err)
		xyz1, err := xy.Add(z)
		require.NoError(t, err)

		yz, err := y.Add(z)
		require.NoError(t, err)
		xyz2, err := x.Add(yz)
		require.NoError(t, err)

		require.True(t, xyz1.Equal(xyz2))

		// Commutativity of multiplication.
		xyMul, err := x.Mul(y)
		require.NoError(t, err)
		yxMul, err := y.Mul(x)
		require.NoError(t, err)
		require.True(t, xyMul.Equal(yxMul))

		// Distributivity: x*(y+z) == x*y + x*z.
		lhs, err := x.Mul(yz)
		require.NoError(t, err)
		xz, err := x.Mul(z)
		require.NoError(t, err)
		rhsSum, err := xyMul.Add(xz)
		require.NoError(t, err)
		require.True(t, lhs.Equal(rhsSum))

		// x - x == 0.
		diff, err := x.Sub(x)
		require.NoError(t, err)
		require.True(t, diff.IsZero())
	})
}

func TestPowKnownValues(t *testing.T) {
	p := big.NewInt(11)

	// 2^10 = 1024 = 1 (mod 11), Fermat with p-1.
	e := MustNew(big.NewInt(2), p)
	r, err := e.Pow(big.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), r.Int())

	// 0^0 = 1 by convention.
	z := MustNew(big.NewInt(0), p)
	r, err = z.Pow(big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), r.Int())

	// Negative exponent: 3^-1 = 4 (mod 11).
	e = MustNew(big.NewInt(3), p)
	r, err = e.Pow(big.NewInt(-1))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(4), r.Int())

	// Negative exponent of zero is not invertible.
	_, err = z.Pow(big.NewInt(-2))
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestFermat(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := big.NewInt(testPrimes[rapid.IntRange(0, len(testPrimes)-1).Draw(t, "pIdx").(int)])
		xi := rapid.Int64Range(1, 100000).Draw(t, "x").(int64)

		x := MustNew(big.NewInt(xi), p)
		if x.IsZero() {
			return
		}

		r, err := x.Pow(new(big.Int).Sub(p, big.NewInt(1)))
		require.NoError(t, err)
		require.Equal(t, big.NewInt(1), r.Int())
	})
}

func TestShiftValue(t *testing.T) {
	p := big.NewInt(11)
	e := MustNew(big.NewInt(6), p)

	// 6 << 2 = 24 = 2 (mod 11); the value grows before reduction.
	require.Equal(t, big.NewInt(2), e.Shl(2).Int())

	// 6 >> 1 = 3, a plain integer shift of the residue.
	require.Equal(t, big.NewInt(3), e.Shr(1).Int())
}

func TestNegCancels(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := big.NewInt(testPrimes[rapid.IntRange(0, len(testPrimes)-1).Draw(t, "pIdx").(int)])
		xi := rapid.Int64Range(-1000, 1000).Draw(t, "x").(int64)

		x := MustNew(big.NewInt(xi), p)
		sum, err := x.Add(x.Neg())
		require.NoError(t, err)
		require.True(t, sum.IsZero())
	})
}

func TestDivTimesDivisor(t *testing.T) {
	p := big.NewInt(97)
	a := MustNew(big.NewInt(42), p)
	b := MustNew(big.NewInt(13), p)

	q, err := a.Div(b)
	require.NoError(t, err)
	back, err := q.Mul(b)
	require.NoError(t, err)
	require.True(t, back.Equal(a))

	_, err = a.Div(MustNew(big.NewInt(0), p))
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestInverseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := big.NewInt(testPrimes[rapid.IntRange(0, len(testPrimes)-1).Draw(t, "pIdx").(int)])
		xi := rapid.Int64Range(1, 100000).Draw(t, "x").(int64)

		x, err := New(big.NewInt(xi), p)
		require.NoError(t, err)
		if x.IsZero() {
			return
		}

		inv, err := x.Inverse()
		require.NoError(t, err)

		prod, err := x.Mul(inv)
		require.NoError(t, err)
		require.True(t, prod.Equal(MustNew(big.NewInt(1), p)))

		back, err := inv.Inverse()
		require.NoError(t, err)
		require.True(t, back.Equal(x))
	})
}
