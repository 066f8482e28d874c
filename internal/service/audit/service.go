package audit

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"backoffice/internal/model"
	pkgAuth "backoffice/pkg/auth"
	"backoffice/pkg/logger"
	"backoffice/pkg/requestid"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionUpload = "upload"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Entry describes one mutating call. Err is the call's outcome.
type Entry struct {
	Action     string
	Resource   string
	ResourceID string
	Payload    any
	Err        error
}

// Record stores e with the operator and request id found in ctx. A failure to
// write the row is logged and never returned: the platform call already
// happened.
func (s *Service) Record(ctx context.Context, e Entry) {
	if s == nil || s.db == nil {
		return
	}
	row := model.AuditLog{
		OperatorID: pkgAuth.OperatorFromContext(ctx),
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Outcome:    model.OutcomeSuccess,
		RequestID:  requestid.FromContext(ctx),
	}
	if e.Payload != nil {
		if data, err := json.Marshal(e.Payload); err == nil {
			row.Payload = datatypes.JSON(data)
		}
	}
	if e.Err != nil {
		row.Outcome = model.OutcomeFailed
		row.Error = truncate(e.Err.Error(), 512)
	}

	// The row outlives a cancelled request.
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(&row).Error; err != nil {
		logger.With(row.RequestID).Error("failed to write audit log",
			zap.String("resource", e.Resource),
			zap.String("action", e.Action),
			zap.Error(err),
		)
	}
}

type ListParams struct {
	Page       int
	Size       int
	Resource   string
	OperatorID int64
	Outcome    string
}

type ListResult struct {
	Items []model.AuditLog `json:"items"`
	Total int64            `json:"total"`
}

func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}

	query := s.db.WithContext(ctx).Model(&model.AuditLog{})
	if r := strings.TrimSpace(p.Resource); r != "" {
		query = query.Where("resource = ?", r)
	}
	if p.OperatorID > 0 {
		query = query.Where("operator_id = ?", p.OperatorID)
	}
	if o := strings.TrimSpace(p.Outcome); o != "" {
		query = query.Where("outcome = ?", o)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.AuditLog
	if total > 0 {
		offset := (p.Page - 1) * p.Size
		if err := query.
			Order("id DESC").
			Limit(p.Size).
			Offset(offset).
			Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &ListResult{
		Items: items,
		Total: total,
	}, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
