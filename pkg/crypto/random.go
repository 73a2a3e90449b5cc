package crypto

import (
	"crypto/rand"
	"math/big"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode returns an uppercase code without ambiguous
// characters (0/O, 1/I).
func GenerateReferralCode(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = referralAlphabet[RandIntn(len(referralAlphabet))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// RandFloat64 returns a uniform random value in [0, 1) with 53 bits of
// precision.
func RandFloat64() float64 {
	return float64(RandIntn(1<<53)) / (1 << 53)
}
