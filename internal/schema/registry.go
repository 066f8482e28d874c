package schema

import (
	"fmt"
	"sort"

	appErr "backoffice/pkg/errors"
)

type parseFunc func(map[string]any) (any, error)

func parseAs[T any](raw map[string]any) (any, error) {
	v, err := Parse[T](raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var entities = map[string]parseFunc{
	"cashback":        parseAs[CashbackConfig],
	"bonus":           parseAs[Bonus],
	"wheel-bonus":     parseAs[WheelBonus],
	"tier":            parseAs[Tier],
	"bot-user":        parseAs[BotUser],
	"banner":          parseAs[Banner],
	"promotion":       parseAs[Promotion],
	"wager-race":      parseAs[WagerRace],
	"trivia-question": parseAs[TriviaQuestion],
	"api-key":         parseAs[APIKey],
	"referral-reward": parseAs[ReferralReward],
}

// ParseEntity parses raw as the entity registered under kind.
func ParseEntity(kind string, raw map[string]any) (any, error) {
	parse, ok := entities[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErr.ErrUnknownEntity, kind)
	}
	return parse(raw)
}

func Entities() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
