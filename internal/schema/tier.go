package schema

import "github.com/go-playground/validator/v10"

// Tier is a loyalty tier; each level opens at an XP threshold.
type Tier struct {
	ID     string      `json:"id,omitempty"`
	Name   string      `json:"name" validate:"required"`
	Image  string      `json:"image,omitempty" validate:"omitempty,url"`
	Levels []TierLevel `json:"levels" validate:"min=1,dive"`
}

type TierLevel struct {
	LevelID            string  `json:"levelId,omitempty"`
	Name               string  `json:"name" validate:"required"`
	Level              int     `json:"level" validate:"gte=1"`
	MinXP              float64 `json:"minXp" validate:"gte=0"`
	MaxXP              float64 `json:"maxXp"`
	CashbackPercentage float64 `json:"cashbackPercentage" validate:"gte=0"`
}

func tierLevelRules(sl validator.StructLevel) {
	l := sl.Current().Interface().(TierLevel)
	greaterThan(sl, "maxXp", l.MaxXP, "minXp", l.MinXP)
}
