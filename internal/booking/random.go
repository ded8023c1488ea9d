package booking

import (
	"crypto/rand"
	"math/big"
)

// RandomSource yields uniformly distributed integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand. OTPs guard trip start, so the default
// source must not be predictable.
type CryptoSource struct{}

// IntN implements RandomSource.
func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("booking: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
