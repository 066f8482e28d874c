package platform

import (
	"context"
	"net/http"

	"backoffice/internal/schema"
)

func (c *Client) ListCashback(ctx context.Context, p ListParams) (*Page[schema.CashbackConfig], error) {
	return fetch[Page[schema.CashbackConfig]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/cashback/list",
		query:    p.query(),
		fallback: "Failed to load cashback rules",
	})
}

func (c *Client) GetCashback(ctx context.Context, id string) (*schema.CashbackConfig, error) {
	return fetch[schema.CashbackConfig](ctx, c, call{
		method:   http.MethodGet,
		path:     "/cashback/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to load cashback rule",
	})
}

func (c *Client) CreateCashback(ctx context.Context, cfg schema.CashbackConfig) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/cashback/create",
		body:     cfg,
		fallback: "Failed to create cashback rule",
	})
}

func (c *Client) UpdateCashback(ctx context.Context, id string, cfg schema.CashbackConfig) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/cashback/update/{id}",
		params:   map[string]string{"id": id},
		body:     cfg,
		fallback: "Failed to update cashback rule",
	})
}

func (c *Client) DeleteCashback(ctx context.Context, id string) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodDelete,
		path:     "/cashback/delete/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to delete cashback rule",
	})
}

func (c *Client) ListCashbackLogs(ctx context.Context, p ListParams) (*Page[schema.CashbackLog], error) {
	return fetch[Page[schema.CashbackLog]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/cashback/logs",
		query:    p.query(),
		fallback: "Failed to load cashback logs",
	})
}
