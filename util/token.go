package util

import (
	"crypto/rand"
	"math/big"
)

// DiscountTokenPrefix starts every generated discount code.
const DiscountTokenPrefix = "DISCOUNT-"

// DiscountSuffixLen is the number of random characters after the prefix.
const DiscountSuffixLen = 6

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateDiscountToken returns DiscountTokenPrefix followed by
// DiscountSuffixLen characters drawn uniformly from [A-Z0-9].
func GenerateDiscountToken() string {
	b := make([]byte, DiscountSuffixLen)
	limit := big.NewInt(int64(len(tokenAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return DiscountTokenPrefix + string(b)
}
