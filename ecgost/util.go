package ecgost

import (
	"io"
	"math/big"

	cryptorand "crypto/rand"

	"github.com/ikle/goecc/fp"
)

func modInverse(v, q *big.Int) (*big.Int, error) {
	e, err := fp.New(v, q)
	if err != nil {
		return nil, err
	}
	inv, err := e.Inverse()
	if err != nil {
		return nil, err
	}
	return inv.Int(), nil
}

// randScalar draws a uniform value in [1, q-1] from rnd, falling back to
// crypto/rand.Reader when rnd is nil.
func randScalar(rnd io.Reader, q *big.Int) (*big.Int, error) {
	if rnd == nil {
		rnd = cryptorand.Reader
	}
	one := big.NewInt(1)
	max := new(big.Int).Sub(q, one)
	k, err := cryptorand.Int(rnd, max)
	if err != nil {
		return nil, err
	}
	return k.Add(k, one), nil
}
