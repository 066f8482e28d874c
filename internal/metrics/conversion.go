package metrics

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ConversionRate is converted/total as a percentage rounded to two places.
// A zero total yields zero.
func ConversionRate(converted, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(converted).
		Mul(hundred).
		DivRound(decimal.NewFromInt(total), 2)
}

// Fingerprint hashes the JSON form of a snapshot. Equal snapshots share a
// fingerprint, so results computed from them can be memoized.
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
