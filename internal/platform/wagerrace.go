package platform

import (
	"context"
	"fmt"
	"net/http"

	"backoffice/internal/schema"
)

// WagerRaceDetail is a race with one page of its ranked participants and the
// tiers an operator may restrict it to.
type WagerRaceDetail struct {
	Race         schema.WagerRace         `json:"wagerRace"`
	Participants Page[schema.Participant] `json:"participants"`
	Tiers        []schema.TierOption      `json:"tiers"`
}

func (c *Client) ListWagerRaces(ctx context.Context, p ListParams) (*Page[schema.WagerRace], error) {
	return fetch[Page[schema.WagerRace]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/wager-race/list",
		query:    p.query(),
		fallback: "Failed to load wager races",
	})
}

// GetWagerRace fetches a race; p pages through its participants.
func (c *Client) GetWagerRace(ctx context.Context, id string, p ListParams) (*WagerRaceDetail, error) {
	const fallback = "Failed to load wager race"
	detail, err := fetch[WagerRaceDetail](ctx, c, call{
		method:   http.MethodGet,
		path:     "/wager-race/get/{id}",
		params:   map[string]string{"id": id},
		query:    p.query(),
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}
	for i := range detail.Participants.Rows {
		if err := schema.Validate(&detail.Participants.Rows[i]); err != nil {
			return nil, Normalize(fmt.Errorf("unexpected participant at rank %d: %w", i, err), fallback)
		}
	}
	return detail, nil
}

func (c *Client) CreateWagerRace(ctx context.Context, race schema.WagerRace) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/wager-race/create",
		body:     race,
		fallback: "Failed to create wager race",
	})
}

func (c *Client) UpdateWagerRace(ctx context.Context, id string, race schema.WagerRace) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/wager-race/update/{id}",
		params:   map[string]string{"id": id},
		body:     race,
		fallback: "Failed to update wager race",
	})
}

func (c *Client) DeleteWagerRace(ctx context.Context, id string) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodDelete,
		path:     "/wager-race/delete/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to delete wager race",
	})
}
