package schema

import "github.com/go-playground/validator/v10"

const (
	PrizePercentage = "Percentage"
	PrizeFixed      = "Fixed"
)

const (
	ParticipantsAll    = "All"
	ParticipantsRank   = "Rank"
	ParticipantsInvite = "Invite"
)

// WagerRace is a time-boxed competition ranked by total amount wagered.
// Period ordering is not checked; the platform owns that decision.
type WagerRace struct {
	ID            string       `json:"id,omitempty"`
	Title         string       `json:"title" validate:"required"`
	Description   string       `json:"description,omitempty"`
	Period        RacePeriod   `json:"period"`
	EligibleGames []string     `json:"eligibleGames" validate:"dive,required"`
	MinWager      float64      `json:"minWager" validate:"gte=0"`
	Prize         Prize        `json:"prize"`
	Participants  Participants `json:"participants"`
	PaymentStatus string       `json:"paymentStatus,omitempty"`
	PayoutType    string       `json:"payoutType,omitempty" validate:"omitempty,oneof=auto manual"`
	Delay         Delay        `json:"delay"`
	Payout        Payout       `json:"payout"`
	Winners       []string     `json:"winners,omitempty"`
}

type RacePeriod struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End   string `json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Prize.Amounts is indexed by 0-based rank.
type Prize struct {
	Type    string    `json:"type" validate:"oneof=Percentage Fixed"`
	Amounts []float64 `json:"amounts" validate:"min=1,dive,gte=0"`
}

type Participants struct {
	Type  string        `json:"type" validate:"oneof=All Rank Invite"`
	Code  string        `json:"code,omitempty"`
	Tiers []string      `json:"tiers,omitempty"`
	Users []Participant `json:"users,omitempty" validate:"dive"`
}

// Participant order is rank order; the platform sorts before responding.
type Participant struct {
	UserID       string  `json:"userId" validate:"required"`
	TotalWagered float64 `json:"totalWagered" validate:"gte=0"`
	Username     string  `json:"username,omitempty"`
}

type Delay struct {
	Type  string  `json:"type,omitempty" validate:"omitempty,oneof=hours days"`
	Value float64 `json:"value" validate:"gte=0"`
}

type Payout struct {
	Type  string  `json:"type,omitempty"`
	Value float64 `json:"value" validate:"gte=0"`
}

// TierOption is a selectable tier for Rank-restricted races.
type TierOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func participantsRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Participants)
	switch p.Type {
	case ParticipantsRank:
		required(sl, "tiers", len(p.Tiers) > 0)
	case ParticipantsInvite:
		required(sl, "code", p.Code != "")
	}
}
