package schema

// Cashback types.
const (
	CashbackTypeDefault      = 0
	CashbackTypeTimeBoosted  = 1
	CashbackTypeGameSpecific = 2
	CashbackTypeWinStreak    = 3
)

const (
	StatusInactive = 0
	StatusActive   = 1
)

// Claim frequency modes.
const (
	ClaimInstant = "instant"
	ClaimDaily   = "daily"
	ClaimWeekly  = "weekly"
	ClaimMonthly = "monthly"
)

var GameTypes = []string{"Slots", "Live Casino", "Crash"}

func IsGameType(s string) bool {
	for _, gt := range GameTypes {
		if gt == s {
			return true
		}
	}
	return false
}

// CashbackConfig is a cashback rule as configured by an operator. Eligibility
// and payouts are computed by the platform; this only carries the shape.
//
// Neither tier ordering nor timeBoost.from < timeBoost.to is enforced.
type CashbackConfig struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name" validate:"required"`
	Type            int             `json:"type" validate:"oneof=0 1 2 3"`
	Tiers           []CashbackTier  `json:"tiers" validate:"dive"`
	ClaimFrequency  ClaimFrequency  `json:"claimFrequency"`
	Default         DefaultCashback `json:"default"`
	TimeBoost       TimeBoost       `json:"timeBoost"`
	GameSpecific    GameSpecific    `json:"gameSpecific"`
	Status          int             `json:"status" validate:"oneof=0 1"`
	WagerMultiplier float64         `json:"wagerMultiplier" validate:"gte=0"`
}

type CashbackTier struct {
	TierID      string      `json:"tierId" validate:"required"`
	TierName    string      `json:"tierName"`
	TierLevel   int         `json:"tierLevel" validate:"gte=0"`
	Percentage  float64     `json:"percentage" validate:"gte=0"`
	MinWagering float64     `json:"minWagering" validate:"gte=0"`
	Cap         CashbackCap `json:"cap"`
}

type CashbackCap struct {
	Day   float64 `json:"day" validate:"gte=0"`
	Week  float64 `json:"week" validate:"gte=0"`
	Month float64 `json:"month" validate:"gte=0"`
}

type ClaimFrequency struct {
	Mode     string  `json:"mode" validate:"oneof=instant daily weekly monthly"`
	Cooldown float64 `json:"cooldown" validate:"gte=0"`
}

type DefaultCashback struct {
	Enabled           bool    `json:"enabled"`
	DefaultPercentage float64 `json:"defaultPercentage" validate:"gte=0"`
}

type TimeBoost struct {
	Enabled           bool    `json:"enabled"`
	From              *string `json:"from" validate:"omitempty,datetime=15:04"`
	To                *string `json:"to" validate:"omitempty,datetime=15:04"`
	AllowedDays       []int   `json:"allowedDays" validate:"dive,min=0,max=6"`
	DefaultPercentage float64 `json:"defaultPercentage" validate:"gte=0"`
}

type GameSpecific struct {
	Enabled     bool             `json:"enabled"`
	Multipliers []GameMultiplier `json:"multipliers" validate:"dive"`
}

type GameMultiplier struct {
	GameType          string  `json:"gameType" validate:"gametype"`
	DefaultPercentage float64 `json:"defaultPercentage" validate:"gte=0"`
}

// CashbackLog is one processed cashback payout as reported by the platform.
type CashbackLog struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Username   string  `json:"username,omitempty"`
	CashbackID string  `json:"cashbackId"`
	TierName   string  `json:"tierName,omitempty"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}
