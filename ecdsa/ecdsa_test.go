package ecdsa

import (
	"crypto/rand"
	"crypto/sha1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ikle/goecc/curve"
	"github.com/ikle/goecc/curves"
)

func secp256k1(t *testing.T) *curve.Group {
	t.Helper()
	g, err := curves.Lookup("secp256k1")
	require.NoError(t, err)
	return g
}

func TestSignVerifyRoundTrip(t *testing.T) {
	g := secp256k1(t)
	priv, pub, err := GenerateKey(g, rand.Reader)
	require.NoError(t, err)

	hash := sha1.Sum([]byte("hello world"))
	sig, err := Sign(rand.Reader, priv, hash[:])
	require.NoError(t, err)

	ok, err := Verify(pub, hash[:], sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyFailsOnTamperedMessage(t *testing.T) {
	g := secp256k1(t)
	priv, pub, err := GenerateKey(g, rand.Reader)
	require.NoError(t, err)

	hash := sha1.Sum([]byte("hello world"))
	sig, err := Sign(rand.Reader, priv, hash[:])
	require.NoError(t, err)

	tampered := sha1.Sum([]byte("hello wor1d"))
	ok, err := Verify(pub, tampered[:], sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyFailsOnTamperedSignature(t *testing.T) {
	g := secp256k1(t)
	priv, pub, err := GenerateKey(g, rand.Reader)
	require.NoError(t, err)

	hash := sha1.Sum([]byte("hello world"))
	sig, err := Sign(rand.Reader, priv, hash[:])
	require.NoError(t, err)

	tampered := &Signature{R: sig.R, S: new(big.Int).Add(sig.S, big.NewInt(1))}
	ok, err := Verify(pub, hash[:], tampered)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyFailsOnWrongKey(t *testing.T) {
	g := secp256k1(t)
	priv, _, err := GenerateKey(g, rand.Reader)
	require.NoError(t, err)
	_, otherPub, err := GenerateKey(g, rand.Reader)
	require.NoError(t, err)

	hash := sha1.Sum([]byte("hello world"))
	sig, err := Sign(rand.Reader, priv, hash[:])
	require.NoError(t, err)

	ok, err := Verify(otherPub, hash[:], sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignVerifyProperty(t *testing.T) {
	g := secp256k1(t)
	rapid.Check(t, func(t *rapid.T) {
		priv, pub, err := GenerateKey(g, rand.Reader)
		require.NoError(t, err)

		msg := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "msg").([]byte)
		hash := sha1.Sum(msg)

		sig, err := Sign(rand.Reader, priv, hash[:])
		require.NoError(t, err)

		ok, err := Verify(pub, hash[:], sig)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestSignVerifyAllGroups(t *testing.T) {
	for _, name := range []string{
		"P-192", "P-224", "P-256", "P-384", "P-521",
		"secp256k1", "ecdsa-test-239-a",
	} {
		name := name
		t.Run(name, func(t *testing.T) {
			g, err := curves.Lookup(name)
			require.NoError(t, err)

			priv, pub, err := GenerateKey(g, rand.Reader)
			require.NoError(t, err)

			hash := sha1.Sum([]byte(name))
			sig, err := Sign(rand.Reader, priv, hash[:])
			require.NoError(t, err)

			ok, err := Verify(pub, hash[:], sig)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

// TestP192KnownPrivateKey signs the SHA-1("abc") digest under a fixed
// private key over the registered P-192 group (aliased as
// ecdsa-test-192-a). k is fresh per signature, so the check is that the
// fixed key round-trips, not that a particular (r, s) pair comes out.
func TestP192KnownPrivateKey(t *testing.T) {
	g, err := curves.Lookup("ecdsa-test-192-a")
	require.NoError(t, err)

	d, ok := new(big.Int).SetString("1A8D598FC15BF0FD89030B5CB1111AEB92AE8BAF5EA475FB", 16)
	require.True(t, ok)
	d.Mod(d, g.Q)
	if d.Sign() == 0 {
		d = big.NewInt(1)
	}

	gen, err := g.Generator()
	require.NoError(t, err)
	q, err := gen.Mul(d)
	require.NoError(t, err)
	qx, qy, err := q.Affine()
	require.NoError(t, err)

	priv := &PrivateKey{Group: g, D: d}
	pub := &PublicKey{Group: g, Qx: qx, Qy: qy}

	e := sha1.Sum([]byte("abc"))
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hexLower(e[:]))

	sig, err := Sign(rand.Reader, priv, e[:])
	require.NoError(t, err)

	verified, err := Verify(pub, e[:], sig)
	require.NoError(t, err)
	require.True(t, verified)
}

// TestP239KnownPrivateKey is the same round-trip with the same SHA-1("abc")
// digest, this time over the 239-bit ecdsa-test-239-a group.
func TestP239KnownPrivateKey(t *testing.T) {
	g, err := curves.Lookup("ecdsa-test-239-a")
	require.NoError(t, err)

	d, ok := new(big.Int).SetString("7EF7C6FABEFFFDEA864206E80B0B08A9331ED93E698561B64CA0F7777F3D", 16)
	require.True(t, ok)
	d.Mod(d, g.Q)
	if d.Sign() == 0 {
		d = big.NewInt(1)
	}

	gen, err := g.Generator()
	require.NoError(t, err)
	q, err := gen.Mul(d)
	require.NoError(t, err)
	qx, qy, err := q.Affine()
	require.NoError(t, err)

	priv := &PrivateKey{Group: g, D: d}
	pub := &PublicKey{Group: g, Qx: qx, Qy: qy}

	e := sha1.Sum([]byte("abc"))

	sig, err := Sign(rand.Reader, priv, e[:])
	require.NoError(t, err)

	verified, err := Verify(pub, e[:], sig)
	require.NoError(t, err)
	require.True(t, verified)
}

func hexLower(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0xf]
	}
	return string(out)
}

func TestIdentityAndZeroScalars(t *testing.T) {
	g := secp256k1(t)
	gen, err := g.Generator()
	require.NoError(t, err)

	// 0*P = O
	zero, err := gen.Mul(big.NewInt(0))
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	// P + O = P
	sum, err := gen.Add(curve.Identity())
	require.NoError(t, err)
	sx, sy, err := sum.Affine()
	require.NoError(t, err)
	require.Equal(t, 0, sx.Cmp(g.Gx))
	require.Equal(t, 0, sy.Cmp(g.Gy))

	// O*d = O for d in {0, 1, q-1, q}
	for _, d := range []*big.Int{big.NewInt(0), big.NewInt(1), new(big.Int).Sub(g.Q, big.NewInt(1)), g.Q} {
		r, err := curve.Identity().Mul(d)
		require.NoError(t, err)
		require.True(t, r.IsZero())
	}
}
