package platform

import (
	"context"
	"io"
	"net/http"

	"backoffice/internal/schema"
)

func (c *Client) ListBonuses(ctx context.Context, p ListParams) (*Page[schema.Bonus], error) {
	return fetch[Page[schema.Bonus]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/bonus",
		query:    p.query(),
		fallback: "Failed to load bonuses",
	})
}

func (c *Client) GetBonus(ctx context.Context, id string) (*schema.Bonus, error) {
	return fetch[schema.Bonus](ctx, c, call{
		method:   http.MethodGet,
		path:     "/bonus/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to load bonus",
	})
}

func (c *Client) CreateBonus(ctx context.Context, b schema.Bonus) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/bonus",
		body:     b,
		fallback: "Failed to create bonus",
	})
}

func (c *Client) UpdateBonus(ctx context.Context, id string, b schema.Bonus) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPut,
		path:     "/bonus/{id}",
		params:   map[string]string{"id": id},
		body:     b,
		fallback: "Failed to update bonus",
	})
}

func (c *Client) DeleteBonus(ctx context.Context, id string) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodDelete,
		path:     "/bonus/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to delete bonus",
	})
}

func (c *Client) UploadBonusBanner(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	return fetch[UploadResult](ctx, c, call{
		method:   http.MethodPost,
		path:     "/bonus/upload-banner",
		file:     &upload{field: "file", filename: filename, content: content},
		fallback: "Failed to upload banner",
	})
}

func (c *Client) ListWheelBonuses(ctx context.Context, p ListParams) (*Page[schema.WheelBonus], error) {
	return fetch[Page[schema.WheelBonus]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/bonus/wheel-bonus",
		query:    p.query(),
		fallback: "Failed to load wheel bonuses",
	})
}

func (c *Client) GetWheelBonus(ctx context.Context, id string) (*schema.WheelBonus, error) {
	return fetch[schema.WheelBonus](ctx, c, call{
		method:   http.MethodGet,
		path:     "/bonus/wheel-bonus/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to load wheel bonus",
	})
}

func (c *Client) CreateWheelBonus(ctx context.Context, w schema.WheelBonus) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/bonus/wheel-bonus",
		body:     w,
		fallback: "Failed to create wheel bonus",
	})
}

func (c *Client) UpdateWheelBonus(ctx context.Context, id string, w schema.WheelBonus) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPut,
		path:     "/bonus/wheel-bonus/{id}",
		params:   map[string]string{"id": id},
		body:     w,
		fallback: "Failed to update wheel bonus",
	})
}

func (c *Client) DeleteWheelBonus(ctx context.Context, id string) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodDelete,
		path:     "/bonus/wheel-bonus/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to delete wheel bonus",
	})
}
