package random

import (
	"crypto/rand"
	"math/big"
)

// letters leaves out characters operators confuse when reading codes aloud.
const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Code returns a random code of length characters, suitable for invite links.
func Code(length int) string {
	return pickFromSet(letters, length)
}

func pickFromSet(set string, length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(set)))
	runes := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			runes[i] = set[0]
			continue
		}
		runes[i] = set[n.Int64()]
	}
	return string(runes)
}
