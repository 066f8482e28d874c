package wagerrace

import (
	"context"

	"backoffice/internal/metrics"
	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/internal/service/audit"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/utils/random"

	"github.com/shopspring/decimal"
)

const (
	Resource       = "wager-race"
	inviteCodeLen  = 8
	prizePoolLimit = platform.MaxLimit
)

type Service struct {
	client *platform.Client
	audit  *audit.Service
}

func NewService(client *platform.Client, auditor *audit.Service) *Service {
	return &Service{client: client, audit: auditor}
}

type PrizePoolResult struct {
	RaceID    string            `json:"raceId"`
	PrizeType string            `json:"prizeType"`
	Total     decimal.Decimal   `json:"total"`
	Formatted string            `json:"formatted"`
	Payouts   []decimal.Decimal `json:"payouts"`
}

func (s *Service) List(ctx context.Context, p platform.ListParams) (*platform.Page[schema.WagerRace], error) {
	return s.client.ListWagerRaces(ctx, p.Normalized())
}

func (s *Service) Get(ctx context.Context, id string, p platform.ListParams) (*platform.WagerRaceDetail, error) {
	return s.client.GetWagerRace(ctx, id, p.Normalized())
}

func (s *Service) Create(ctx context.Context, raw map[string]any) (*platform.MutationResult, error) {
	race, err := parse(raw)
	if err != nil {
		return nil, err
	}
	res, err := s.client.CreateWagerRace(ctx, race)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionCreate, Resource: Resource, Payload: race, Err: err})
	return res, err
}

func (s *Service) Update(ctx context.Context, id string, raw map[string]any) (*platform.MutationResult, error) {
	race, err := parse(raw)
	if err != nil {
		return nil, err
	}
	race.ID = id
	res, err := s.client.UpdateWagerRace(ctx, id, race)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpdate, Resource: Resource, ResourceID: id, Payload: race, Err: err})
	return res, err
}

func (s *Service) Delete(ctx context.Context, id string) (*platform.MutationResult, error) {
	res, err := s.client.DeleteWagerRace(ctx, id)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionDelete, Resource: Resource, ResourceID: id, Err: err})
	return res, err
}

// PrizePool computes the payout of a race from the first page of its ranked
// participants. Ranks past prizePoolLimit are not fetched.
func (s *Service) PrizePool(ctx context.Context, id string) (*PrizePoolResult, error) {
	detail, err := s.client.GetWagerRace(ctx, id, platform.ListParams{Page: 1, Limit: prizePoolLimit})
	if err != nil {
		return nil, err
	}
	if detail.Race.ID == "" && detail.Race.Title == "" {
		return nil, appErr.ErrWagerRaceNotFound
	}
	rows := detail.Participants.Rows
	total := metrics.PrizePool(detail.Race.Prize, rows)
	return &PrizePoolResult{
		RaceID:    id,
		PrizeType: detail.Race.Prize.Type,
		Total:     total,
		Formatted: metrics.FormatCurrency(total),
		Payouts:   metrics.RankPayouts(detail.Race.Prize, rows),
	}, nil
}

// parse decodes raw and fills a missing invite code before validating, so an
// invite-only race can be created without picking a code by hand.
func parse(raw map[string]any) (schema.WagerRace, error) {
	var race schema.WagerRace
	if err := schema.Decode(raw, &race); err != nil {
		return race, err
	}
	if race.Participants.Type == schema.ParticipantsInvite && race.Participants.Code == "" {
		race.Participants.Code = random.Code(inviteCodeLen)
	}
	if err := schema.Validate(&race); err != nil {
		return race, err
	}
	return race, nil
}
