package tier

import (
	"context"
	"io"
	"strings"

	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/internal/service/audit"
	appErr "backoffice/pkg/errors"
)

const Resource = "tier"

type Service struct {
	client *platform.Client
	audit  *audit.Service
}

func NewService(client *platform.Client, auditor *audit.Service) *Service {
	return &Service{client: client, audit: auditor}
}

func (s *Service) List(ctx context.Context, p platform.ListParams) (*platform.Page[schema.Tier], error) {
	return s.client.ListTiers(ctx, p.Normalized())
}

func (s *Service) Create(ctx context.Context, raw map[string]any) (*platform.MutationResult, error) {
	t, err := schema.Parse[schema.Tier](raw)
	if err != nil {
		return nil, err
	}
	res, err := s.client.CreateTier(ctx, t)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionCreate, Resource: Resource, Payload: t, Err: err})
	return res, err
}

func (s *Service) Update(ctx context.Context, id string, raw map[string]any) (*platform.MutationResult, error) {
	t, err := schema.Parse[schema.Tier](raw)
	if err != nil {
		return nil, err
	}
	t.ID = id
	res, err := s.client.UpdateTier(ctx, id, t)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpdate, Resource: Resource, ResourceID: id, Payload: t, Err: err})
	return res, err
}

// Delete removes a single level when levelID is set, otherwise the tier.
func (s *Service) Delete(ctx context.Context, id, levelID string) (*platform.MutationResult, error) {
	levelID = strings.TrimSpace(levelID)
	res, err := s.client.DeleteTier(ctx, id, levelID)
	var payload any
	if levelID != "" {
		payload = map[string]string{"levelId": levelID}
	}
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionDelete, Resource: Resource, ResourceID: id, Payload: payload, Err: err})
	return res, err
}

func (s *Service) UpdateImage(ctx context.Context, id, filename string, content io.Reader) (*platform.UploadResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErr.ErrInvalidID
	}
	if content == nil || strings.TrimSpace(filename) == "" {
		return nil, appErr.ErrMissingUpload
	}
	res, err := s.client.UpdateTierImage(ctx, id, filename, content)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpload, Resource: Resource, ResourceID: id, Payload: map[string]string{"filename": filename}, Err: err})
	return res, err
}
