package metrics

import (
	"backoffice/internal/schema"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PrizePool returns the total a wager race pays out.
//
// Fixed prizes pay the listed amounts. Percentage prizes pay each ranked
// participant amounts[rank] percent of what they wagered, where rank is the
// participant's position in the list; the list is trusted to be rank-ordered.
// Ranks past the end of amounts earn nothing.
func PrizePool(prize schema.Prize, participants []schema.Participant) decimal.Decimal {
	pool := decimal.Zero
	switch prize.Type {
	case schema.PrizeFixed:
		for _, amount := range prize.Amounts {
			pool = pool.Add(decimal.NewFromFloat(amount))
		}
	case schema.PrizePercentage:
		for rank, p := range participants {
			if rank >= len(prize.Amounts) {
				break
			}
			share := decimal.NewFromFloat(p.TotalWagered).
				Mul(decimal.NewFromFloat(prize.Amounts[rank])).
				Div(hundred)
			pool = pool.Add(share)
		}
	}
	return pool
}

// RankPayouts splits a race's pool per rank, in the same order as PrizePool.
func RankPayouts(prize schema.Prize, participants []schema.Participant) []decimal.Decimal {
	switch prize.Type {
	case schema.PrizeFixed:
		out := make([]decimal.Decimal, len(prize.Amounts))
		for i, amount := range prize.Amounts {
			out[i] = decimal.NewFromFloat(amount)
		}
		return out
	case schema.PrizePercentage:
		n := min(len(participants), len(prize.Amounts))
		out := make([]decimal.Decimal, n)
		for rank := 0; rank < n; rank++ {
			out[rank] = decimal.NewFromFloat(participants[rank].TotalWagered).
				Mul(decimal.NewFromFloat(prize.Amounts[rank])).
				Div(hundred)
		}
		return out
	}
	return nil
}
