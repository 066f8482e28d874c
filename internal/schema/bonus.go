package schema

import "github.com/go-playground/validator/v10"

// WheelSlots is the fixed number of slots on a reward wheel.
const WheelSlots = 8

type Bonus struct {
	ID                 string  `json:"id,omitempty"`
	Name               string  `json:"name" validate:"required"`
	Description        string  `json:"description,omitempty"`
	Type               string  `json:"type" validate:"oneof=deposit no_deposit free_spins reload"`
	Amount             float64 `json:"amount" validate:"gte=0"`
	Percentage         float64 `json:"percentage" validate:"gte=0"`
	MinDeposit         float64 `json:"minDeposit" validate:"gte=0"`
	MaxDeposit         float64 `json:"maxDeposit" validate:"gte=0"`
	MaxBonus           float64 `json:"maxBonus" validate:"gte=0"`
	WageringMultiplier float64 `json:"wageringMultiplier" validate:"gte=0"`
	ValidDays          int     `json:"validDays" validate:"gte=0"`
	BannerURL          string  `json:"bannerUrl,omitempty" validate:"omitempty,url"`
	Status             int     `json:"status" validate:"oneof=0 1"`
}

// A zero maxDeposit means the bonus has no deposit ceiling.
func bonusRules(sl validator.StructLevel) {
	b := sl.Current().Interface().(Bonus)
	if b.MaxDeposit != 0 {
		greaterThan(sl, "maxDeposit", b.MaxDeposit, "minDeposit", b.MinDeposit)
	}
}

// WheelBonus is a reward wheel: slot i pays Amounts[i] with relative weight Weights[i].
type WheelBonus struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name" validate:"required"`
	Amounts       []float64 `json:"amounts" validate:"len=8,dive,gte=0"`
	Weights       []float64 `json:"weights" validate:"len=8,dive,gte=0"`
	CooldownHours float64   `json:"cooldownHours" validate:"gte=0"`
	Status        int       `json:"status" validate:"oneof=0 1"`
}

func wheelRules(sl validator.StructLevel) {
	w := sl.Current().Interface().(WheelBonus)
	if len(w.Weights) == WheelSlots {
		notAllZero(sl, "weights", w.Weights)
	}
}

// BotUser drives a simulated player in crash-style games.
type BotUser struct {
	ID            string  `json:"id,omitempty"`
	Username      string  `json:"username" validate:"required,min=3"`
	MinMultiplier float64 `json:"minMultiplier" validate:"gte=1"`
	MaxMultiplier float64 `json:"maxMultiplier"`
	MinBet        float64 `json:"minBet"`
	MaxBet        float64 `json:"maxBet"`
	Status        int     `json:"status" validate:"oneof=0 1"`
}

func botUserRules(sl validator.StructLevel) {
	b := sl.Current().Interface().(BotUser)
	nonNegative(sl, "minBet", b.MinBet)
	greaterThan(sl, "maxMultiplier", b.MaxMultiplier, "minMultiplier", b.MinMultiplier)
	greaterThan(sl, "maxBet", b.MaxBet, "minBet", b.MinBet)
}
