package platform

import (
	"context"
	"fmt"
	"net/http"

	"backoffice/internal/schema"
)

func (c *Client) ListUsers(ctx context.Context, p ListParams) (*Page[schema.User], error) {
	return fetch[Page[schema.User]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/user/list",
		query:    p.query(),
		fallback: "Failed to search users",
	})
}

// ListAssets returns the treasury balances. Each asset is checked before it is
// handed to the dashboard arithmetic.
func (c *Client) ListAssets(ctx context.Context) ([]schema.CryptoAsset, error) {
	const fallback = "Failed to load wallet assets"
	assets, err := fetch[[]schema.CryptoAsset](ctx, c, call{
		method:   http.MethodGet,
		path:     "/wallet/assets",
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}
	for i := range *assets {
		if err := schema.Validate(&(*assets)[i]); err != nil {
			return nil, Normalize(fmt.Errorf("unexpected asset %q: %w", (*assets)[i].Symbol, err), fallback)
		}
	}
	return *assets, nil
}

func (c *Client) GetReferralStats(ctx context.Context) (*schema.ReferralStats, error) {
	const fallback = "Failed to load referral statistics"
	stats, err := fetch[schema.ReferralStats](ctx, c, call{
		method:   http.MethodGet,
		path:     "/affiliate/stats",
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(stats); err != nil {
		return nil, Normalize(fmt.Errorf("unexpected referral statistics: %w", err), fallback)
	}
	return stats, nil
}
