package operator

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/model"
	pkgAuth "backoffice/pkg/auth"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

type LoginResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expireAt"`
	Operator OperatorInfo `json:"operator"`
}

type OperatorInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ListResult struct {
	Items []OperatorInfo `json:"items"`
	Total int64          `json:"total"`
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login checks credentials before status, so a disabled account is only
// reported to someone holding its password. A successful login stamps
// last_login_at.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	op, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !op.Active() {
		return nil, appErr.ErrOperatorDisabled
	}

	token, expireAt, err := pkgAuth.GenerateOperatorToken(op.ID)
	if err != nil {
		return nil, err
	}
	if err := s.recordLogin(ctx, op); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpireAt: expireAt, Operator: sanitize(*op)}, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*model.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, appErr.ErrInvalidOperatorPassword
	}

	var op model.Operator
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&op).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, appErr.ErrOperatorNotFound
	case err != nil:
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return nil, appErr.ErrInvalidOperatorPassword
	}
	return &op, nil
}

// recordLogin stamps last_login_at; gorm moves updated_at with it.
func (s *Service) recordLogin(ctx context.Context, op *model.Operator) error {
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(op).Update("last_login_at", now).Error; err != nil {
		return err
	}
	op.LastLoginAt = &now
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OperatorInfo, error) {
	var op model.Operator
	if err := s.db.WithContext(ctx).First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.ErrOperatorNotFound
		}
		return nil, err
	}
	info := sanitize(op)
	return &info, nil
}

func (s *Service) List(ctx context.Context, page, size int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&model.Operator{}).
		Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]OperatorInfo, 0)
	if total > 0 {
		var ops []model.Operator
		offset := (page - 1) * size
		if err := s.db.WithContext(ctx).
			Model(&model.Operator{}).
			Order("id ASC").
			Limit(size).
			Offset(offset).
			Find(&ops).Error; err != nil {
			return nil, err
		}
		for _, op := range ops {
			items = append(items, sanitize(op))
		}
	}

	return &ListResult{
		Items: items,
		Total: total,
	}, nil
}

func (s *Service) EnsureDefaultOperator(ctx context.Context) error {
	cfg := config.GlobalConfig.Admin
	if cfg.DefaultUsername == "" || cfg.DefaultPassword == "" {
		logger.Log.Warn("default operator credentials not configured; skipping bootstrap")
		return nil
	}

	var exists int64
	if err := s.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("username = ?", cfg.DefaultUsername).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	op := model.Operator{
		Username:     cfg.DefaultUsername,
		PasswordHash: string(hash),
		DisplayName:  cfg.DefaultUsername,
		Status:       model.OperatorActive,
	}
	if err := s.db.WithContext(ctx).Create(&op).Error; err != nil {
		return err
	}
	logger.Log.Info("default operator account created",
		zap.String("username", cfg.DefaultUsername))
	return nil
}

func sanitize(op model.Operator) OperatorInfo {
	return OperatorInfo{
		ID:          op.ID,
		Username:    op.Username,
		DisplayName: op.DisplayName,
		Status:      op.Status,
		LastLoginAt: op.LastLoginAt,
		CreatedAt:   op.CreatedAt,
	}
}
