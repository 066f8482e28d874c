package schema

import "github.com/go-playground/validator/v10"

type Banner struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Link     string `json:"link,omitempty" validate:"omitempty,url"`
	Position int    `json:"position" validate:"gte=0"`
	Status   int    `json:"status" validate:"oneof=0 1"`
}

type Promotion struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	StartsAt    string `json:"startsAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt      string `json:"endsAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Status      int    `json:"status" validate:"oneof=0 1"`
}

type TriviaQuestion struct {
	ID               string   `json:"id,omitempty"`
	Question         string   `json:"question" validate:"required"`
	Category         string   `json:"category,omitempty"`
	Options          []string `json:"options" validate:"min=2,max=6,dive,required"`
	CorrectIndex     int      `json:"correctIndex" validate:"gte=0"`
	Reward           float64  `json:"reward" validate:"gte=0"`
	TimeLimitSeconds int      `json:"timeLimitSeconds" validate:"gte=1"`
}

func triviaRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(TriviaQuestion)
	lessThan(sl, "correctIndex", float64(q.CorrectIndex), "the number of options", float64(len(q.Options)))
}

// APIKey is a platform API credential request. The secret itself is minted by
// the platform and never passes through here.
type APIKey struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions" validate:"min=1,dive,oneof=read write admin"`
	IPWhitelist []string `json:"ipWhitelist,omitempty" validate:"dive,ip"`
	ExpiresAt   string   `json:"expiresAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type ReferralReward struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name" validate:"required"`
	RewardType string  `json:"rewardType" validate:"oneof=Fixed Percentage"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	MinDeposit float64 `json:"minDeposit" validate:"gte=0"`
	MaxReward  float64 `json:"maxReward" validate:"gte=0"`
	Status     int     `json:"status" validate:"oneof=0 1"`
}

func referralRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(ReferralReward)
	if r.RewardType == PrizePercentage {
		atMost(sl, "amount", r.Amount, "100", 100)
	}
}
