package pkg

import (
	cryptoRand "crypto/rand"
	"fmt"
	"math/big"
)

// RandDigits returns a zero-padded n-digit decimal code drawn uniformly from
// [0, 10^n) via crypto/rand.
func RandDigits(n int) (string, error) {
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	x, err := cryptoRand.Int(cryptoRand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, x), nil
}
