package curves

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownCurves(t *testing.T) {
	for _, name := range []string{
		"P-192", "P-224", "P-256", "P-384", "P-521",
		"secp256k1", "ecdsa-test-239-a", "ecgost-test-a", "ecgost-test-b",
	} {
		g, err := Lookup(name)
		require.NoErrorf(t, err, "looking up %s", name)
		require.NotNil(t, g)
	}
}

func TestLookupAliases(t *testing.T) {
	byCanonical, err := Lookup("P-256")
	require.NoError(t, err)
	byAlias, err := Lookup("secp256r1")
	require.NoError(t, err)
	require.True(t, byCanonical.Curve.Equal(byAlias.Curve))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("not-a-real-curve")
	require.ErrorIs(t, err, ErrUnknownCurve)
}

func TestEveryRegisteredGroupValidates(t *testing.T) {
	for _, name := range Names() {
		g, err := Lookup(name)
		require.NoErrorf(t, err, "looking up %s", name)
		require.NoErrorf(t, g.Validate(), "validating %s", name)
	}
}
