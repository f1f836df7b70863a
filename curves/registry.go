// Package curves is a static registry of named short-Weierstrass groups,
// analogous to crypto/elliptic's P224/P256/P384/P521 constructors but
// covering both the NIST/SEC family used by EC-DSA and the GOST family
// used by EC-GOST R 34.10.
package curves

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ikle/goecc/curve"
)

// ErrUnknownCurve is returned by Lookup for a name not present in the
// registry.
var ErrUnknownCurve = errors.New("curves: unknown curve name")

func h(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: bad hex constant: " + s)
	}
	return n
}

// group builds and lazily validates a *curve.Group the first time it is
// requested, so the one-time q*G == O self-check (curve.Group.Validate)
// does not run at package init for curves nobody ends up using.
type group struct {
	once sync.Once
	g    *curve.Group
	err  error

	a, b, p, gx, gy, q string
}

func (e *group) build() (*curve.Group, error) {
	e.once.Do(func() {
		g := &curve.Group{
			Curve: curve.New(h(e.a), h(e.b), h(e.p)),
			Gx:    h(e.gx),
			Gy:    h(e.gy),
			Q:     h(e.q),
		}
		if err := g.Validate(); err != nil {
			e.err = err
			return
		}
		e.g = g
	})
	return e.g, e.err
}

// registry holds the NIST P-curves (FIPS 186-4 / SEC 2), secp256k1, the
// 239-bit ANS X9.62 worked-example curve, and the GOST R 34.10 256-bit and
// 512-bit test parameter sets from RFC 4357 / TC26, keyed by every alias a
// caller might reasonably use.
var registry = map[string]*group{}

var canonical = []struct {
	names              []string
	a, b, p, gx, gy, q string
}{
	{
		names: []string{"P-192", "secp192r1", "nistp192", "ecdsa-test-192-a"},
		a:     "fffffffffffffffffffffffffffffffefffffffffffffffc",
		b:     "64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1",
		p:     "fffffffffffffffffffffffffffffffeffffffffffffffff",
		gx:    "188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012",
		gy:    "7192b95ffc8da78631011ed6b24cdd573f977a11e794811",
		q:     "ffffffffffffffffffffffff99def836146bc9b1b4d22831",
	},
	{
		names: []string{"P-224", "secp224r1", "nistp224"},
		a:     "fffffffffffffffffffffffffffffffefffffffffffffffffffffffe",
		b:     "b4050a850c04b3abf54132565044b0b7d7bfd8ba270b39432355ffb4",
		p:     "ffffffffffffffffffffffffffffffff000000000000000000000001",
		gx:    "b70e0cbd6bb4bf7f321390b94a03c1d356c21122343280d6115c1d21",
		gy:    "bd376388b5f723fb4c22dfe6cd4375a05a07476444d5819985007e34",
		q:     "ffffffffffffffffffffffffffff16a2e0b8f03e13dd29455c5c2a3d",
	},
	{
		names: []string{"P-256", "secp256r1", "nistp256", "prime256v1", "ecdsa-test-256-a"},
		a:     "ffffffff00000001000000000000000000000000fffffffffffffffffffffffc",
		b:     "5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
		p:     "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
		gx:    "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		gy:    "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
		q:     "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
	},
	{
		names: []string{"P-384", "secp384r1", "nistp384"},
		a:     "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000fffffffc",
		b:     "b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef",
		p:     "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff",
		gx:    "aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7",
		gy:    "3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f",
		q:     "ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
	},
	{
		names: []string{"P-521", "secp521r1", "nistp521"},
		a:     "1fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc",
		b:     "51953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00",
		p:     "1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		gx:    "c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66",
		gy:    "11839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650",
		q:     "1fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409",
	},
	{
		// A smaller 239-bit EC-DSA test curve from the same ANS X9.62
		// worked-example family as the P-192 set above.
		names: []string{"ecdsa-test-239-a"},
		a:     "7fffffffffffffffffffffff7fffffffffff8000000000007ffffffffffc",
		b:     "6b016c3bdcf18941d0d654921475ca71a9db2fb27d1d37796185c2942c0a",
		p:     "7fffffffffffffffffffffff7fffffffffff8000000000007fffffffffff",
		gx:    "ffa963cdca8816ccc33b8642bedf905c3d358573d3f27fbbd3b3cb9aaaf",
		gy:    "7debe8e4e90a5dae6e4054ca530ba04654b36818ce226b39fccb7b02f1ae",
		q:     "7fffffffffffffffffffffff7fffff9e5e9a9f5d9071fbd1522688909d0b",
	},
	{
		names: []string{"secp256k1"},
		a:     "0",
		b:     "7",
		p:     "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		gx:    "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		gy:    "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		q:     "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	},
	{
		// GOST R 34.10-2001 test parameters (RFC 4357 id-GostR3410-2001-TestParamSet,
		// OID 1.2.643.2.2.35.0). These are publicly documented test vectors, not a
		// production CryptoPro curve; no CryptoPro set is registered.
		names: []string{"ecgost-test-a", "id-GostR3410-2001-TestParamSet", "1.2.643.2.2.35.0"},
		a:     "7",
		b:     "5fbff498aa938ce739b8e022fbafef40563f6e6a3472fc2a514c0ce9dae23b7e",
		p:     "8000000000000000000000000000000000000000000000000000000000000431",
		gx:    "2",
		gy:    "8e2a8a0e65147d4bd6316030e16d19c85c97f0a9ca267122b96abbcea7e8fc8",
		q:     "8000000000000000000000000000000150fe8a1892976154c59cfc193accf5b3",
	},
	{
		// GOST R 34.10-2012 512-bit test parameter set: same worked-example
		// family as ecgost-test-a, one security level up.
		names: []string{"ecgost-test-b"},
		a:     "7",
		b:     "1cff0806a31116da29d8cfa54e57eb748bc5f377e49400fdd788b649eca1ac4361834013b2ad7322480a89ca58e0cf74bc9e540c2add6897fad0a3084f302adc",
		p:     "4531acd1fe0023c7550d267b6b2fee80922b14b2ffb90f04d4eb7c09b5d2d15df1d852741af4704a0458047e80e4546d35b8336fac224dd81664bbf528be6373",
		gx:    "24d19cc64572ee30f396bf6ebbfd7a6c5213b3b3d7057cc825f91093a68cd762fd60611262cd838dc6b60aa7eee804e28bc849977fac33b4b530f1b120248a9a",
		gy:    "2bb312a43bd2ce6e0d020613c857acddcfbf061e91e5f2c3f32447c259f39b2c83ab156d77f1496bf7eb3351e1ee4e43dc1a18b91b24640b6dbb92cb1add371e",
		q:     "4531acd1fe0023c7550d267b6b2fee80922b14b2ffb90f04d4eb7c09b5d2d15da82f2d7ecb1dbac719905c5eecc423f1d86e25edbe23c595d644aaf187e6e6df",
	},
}

func init() {
	for _, c := range canonical {
		g := &group{a: c.a, b: c.b, p: c.p, gx: c.gx, gy: c.gy, q: c.q}
		for _, n := range c.names {
			registry[n] = g
		}
	}
}

// Lookup returns the named group, validating its generator against its
// curve and order on first use. Name matching is exact; see the constants
// above for accepted aliases (e.g. "P-256", "secp256r1", "nistp256").
func Lookup(name string) (*curve.Group, error) {
	e, ok := registry[name]
	if !ok {
		return nil, ErrUnknownCurve
	}
	return e.build()
}

// Names returns every registered alias, for diagnostics and tests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
