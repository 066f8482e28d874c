package bonus

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/internal/service/audit"
	appErr "backoffice/pkg/errors"
)

const (
	Resource      = "bonus"
	WheelResource = "wheel-bonus"
)

var bannerExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type Service struct {
	client *platform.Client
	audit  *audit.Service
}

func NewService(client *platform.Client, auditor *audit.Service) *Service {
	return &Service{client: client, audit: auditor}
}

func (s *Service) List(ctx context.Context, p platform.ListParams) (*platform.Page[schema.Bonus], error) {
	return s.client.ListBonuses(ctx, p.Normalized())
}

func (s *Service) Get(ctx context.Context, id string) (*schema.Bonus, error) {
	return s.client.GetBonus(ctx, id)
}

func (s *Service) Create(ctx context.Context, raw map[string]any) (*platform.MutationResult, error) {
	b, err := schema.Parse[schema.Bonus](raw)
	if err != nil {
		return nil, err
	}
	res, err := s.client.CreateBonus(ctx, b)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionCreate, Resource: Resource, Payload: b, Err: err})
	return res, err
}

func (s *Service) Update(ctx context.Context, id string, raw map[string]any) (*platform.MutationResult, error) {
	b, err := schema.Parse[schema.Bonus](raw)
	if err != nil {
		return nil, err
	}
	b.ID = id
	res, err := s.client.UpdateBonus(ctx, id, b)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpdate, Resource: Resource, ResourceID: id, Payload: b, Err: err})
	return res, err
}

func (s *Service) Delete(ctx context.Context, id string) (*platform.MutationResult, error) {
	res, err := s.client.DeleteBonus(ctx, id)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionDelete, Resource: Resource, ResourceID: id, Err: err})
	return res, err
}

// UploadBanner forwards an image and returns the URL to store in bannerUrl.
func (s *Service) UploadBanner(ctx context.Context, filename string, content io.Reader) (*platform.UploadResult, error) {
	if err := checkImage(filename, content); err != nil {
		return nil, err
	}
	res, err := s.client.UploadBonusBanner(ctx, filename, content)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpload, Resource: Resource, Payload: map[string]string{"filename": filename}, Err: err})
	return res, err
}

func (s *Service) ListWheels(ctx context.Context, p platform.ListParams) (*platform.Page[schema.WheelBonus], error) {
	return s.client.ListWheelBonuses(ctx, p.Normalized())
}

func (s *Service) GetWheel(ctx context.Context, id string) (*schema.WheelBonus, error) {
	return s.client.GetWheelBonus(ctx, id)
}

func (s *Service) CreateWheel(ctx context.Context, raw map[string]any) (*platform.MutationResult, error) {
	w, err := schema.Parse[schema.WheelBonus](raw)
	if err != nil {
		return nil, err
	}
	res, err := s.client.CreateWheelBonus(ctx, w)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionCreate, Resource: WheelResource, Payload: w, Err: err})
	return res, err
}

func (s *Service) UpdateWheel(ctx context.Context, id string, raw map[string]any) (*platform.MutationResult, error) {
	w, err := schema.Parse[schema.WheelBonus](raw)
	if err != nil {
		return nil, err
	}
	w.ID = id
	res, err := s.client.UpdateWheelBonus(ctx, id, w)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionUpdate, Resource: WheelResource, ResourceID: id, Payload: w, Err: err})
	return res, err
}

func (s *Service) DeleteWheel(ctx context.Context, id string) (*platform.MutationResult, error) {
	res, err := s.client.DeleteWheelBonus(ctx, id)
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionDelete, Resource: WheelResource, ResourceID: id, Err: err})
	return res, err
}

func checkImage(filename string, content io.Reader) error {
	if content == nil || strings.TrimSpace(filename) == "" {
		return appErr.ErrMissingUpload
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !bannerExtensions[ext] {
		return fmt.Errorf("%w: %q", appErr.ErrUnsupportedUpload, ext)
	}
	return nil
}
