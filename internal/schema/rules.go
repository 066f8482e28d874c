package schema

import "github.com/go-playground/validator/v10"

// Cross-field rules shared by the entity validators. Each one reports on the
// field that has to change, never on the one it is compared with.

func nonNegative(sl validator.StructLevel, field string, value float64) {
	if !(value >= 0) {
		sl.ReportError(value, field, field, "gte", "0")
	}
}

func greaterThan(sl validator.StructLevel, field string, value float64, other string, otherValue float64) {
	if !(value > otherValue) {
		sl.ReportError(value, field, field, "gtfield", other)
	}
}

func lessThan(sl validator.StructLevel, field string, value float64, other string, otherValue float64) {
	if !(value < otherValue) {
		sl.ReportError(value, field, field, "ltfield", other)
	}
}

func atMost(sl validator.StructLevel, field string, value float64, limit string, limitValue float64) {
	if !(value <= limitValue) {
		sl.ReportError(value, field, field, "lte", limit)
	}
}

func notAllZero(sl validator.StructLevel, field string, values []float64) {
	for _, v := range values {
		if v != 0 {
			return
		}
	}
	sl.ReportError(values, field, field, "nonzero", "")
}

func required(sl validator.StructLevel, field string, present bool) {
	if !present {
		sl.ReportError("", field, field, "required", "")
	}
}

func registerRules(v *validator.Validate) {
	v.RegisterStructValidation(botUserRules, BotUser{})
	v.RegisterStructValidation(bonusRules, Bonus{})
	v.RegisterStructValidation(tierLevelRules, TierLevel{})
	v.RegisterStructValidation(participantsRules, Participants{})
	v.RegisterStructValidation(triviaRules, TriviaQuestion{})
	v.RegisterStructValidation(referralRules, ReferralReward{})
	v.RegisterStructValidation(wheelRules, WheelBonus{})
}
