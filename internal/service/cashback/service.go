package cashback

import (
	"context"

	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/internal/service/audit"
)

const Resource = "cashback"

type Service struct {
	client *platform.Client
	audit  *audit.Service
}

func NewService(client *platform.Client, auditor *audit.Service) *Service {
	return &Service{client: client, audit: auditor}
}

func (s *Service) List(ctx context.Context, p platform.ListParams) (*platform.Page[schema.CashbackConfig], error) {
	return s.client.ListCashback(ctx, p.Normalized())
}

func (s *Service) Get(ctx context.Context, id string) (*schema.CashbackConfig, error) {
	return s.client.GetCashback(ctx, id)
}

func (s *Service) Logs(ctx context.Context, p platform.ListParams) (*platform.Page[schema.CashbackLog], error) {
	return s.client.ListCashbackLogs(ctx, p.Normalized())
}

// Create validates raw and, only when it is valid, submits it. Validation
// failures come back as schema.Errors.
func (s *Service) Create(ctx context.Context, raw map[string]any) (*platform.MutationResult, error) {
	cfg, err := schema.Parse[schema.CashbackConfig](raw)
	if err != nil {
		return nil, err
	}
	res, err := s.client.CreateCashback(ctx, cfg)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionCreate, Resource: Resource, Payload: cfg, Err: err})
	return res, err
}

func (s *Service) Update(ctx context.Context, id string, raw map[string]any) (*platform.MutationResult, error) {
	cfg, err := schema.Parse[schema.CashbackConfig](raw)
	if err != nil {
		return nil, err
	}
	cfg.ID = id
	res, err := s.client.UpdateCashback(ctx, id, cfg)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpdate, Resource: Resource, ResourceID: id, Payload: cfg, Err: err})
	return res, err
}

func (s *Service) Delete(ctx context.Context, id string) (*platform.MutationResult, error) {
	res, err := s.client.DeleteCashback(ctx, id)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionDelete, Resource: Resource, ResourceID: id, Err: err})
	return res, err
}
