package platform

import (
	"context"
	"io"
	"net/http"

	"backoffice/internal/schema"
)

func (c *Client) ListTiers(ctx context.Context, p ListParams) (*Page[schema.Tier], error) {
	return fetch[Page[schema.Tier]](ctx, c, call{
		method:   http.MethodGet,
		path:     "/tier/list",
		query:    p.query(),
		fallback: "Failed to load tiers",
	})
}

func (c *Client) CreateTier(ctx context.Context, t schema.Tier) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/tier/create",
		body:     t,
		fallback: "Failed to create tier",
	})
}

func (c *Client) UpdateTier(ctx context.Context, id string, t schema.Tier) (*MutationResult, error) {
	return mutate(ctx, c, call{
		method:   http.MethodPost,
		path:     "/tier/update/{id}",
		params:   map[string]string{"id": id},
		body:     t,
		fallback: "Failed to update tier",
	})
}

// DeleteTier removes one level of a tier, or the whole tier when levelID is empty.
func (c *Client) DeleteTier(ctx context.Context, id, levelID string) (*MutationResult, error) {
	cl := call{
		method:   http.MethodDelete,
		path:     "/tier/delete/{id}",
		params:   map[string]string{"id": id},
		fallback: "Failed to delete tier",
	}
	if levelID != "" {
		cl.query = map[string]string{"levelId": levelID}
	}
	return mutate(ctx, c, cl)
}

func (c *Client) UpdateTierImage(ctx context.Context, tierID, filename string, content io.Reader) (*UploadResult, error) {
	return fetch[UploadResult](ctx, c, call{
		method:   http.MethodPost,
		path:     "/tier/update-image",
		form:     map[string]string{"tierId": tierID},
		file:     &upload{field: "image", filename: filename, content: content},
		fallback: "Failed to update tier image",
	})
}
