package bonus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/model"
	"backoffice/internal/platform"
	"backoffice/internal/schema"
	auditsvc "backoffice/internal/service/audit"
	bonussvc "backoffice/internal/service/bonus"
	appErr "backoffice/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T, calls *atomic.Int32) (*gorm.DB, *bonussvc.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate audit model: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bonus/upload-banner" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://cdn.test/b.png"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	client := platform.NewClient(config.PlatformConfig{BaseURL: srv.URL})
	return db, bonussvc.NewService(client, auditsvc.NewService(db))
}

func wheel(weights []any) map[string]any {
	return map[string]any{
		"name":    "Daily wheel",
		"amounts": []any{1, 2, 3, 4, 5, 6, 7, 8},
		"weights": weights,
		"status":  1,
	}
}

func TestCreateWheelRequiresEightSlots(t *testing.T) {
	var calls atomic.Int32
	_, svc := newService(t, &calls)

	_, err := svc.CreateWheel(context.Background(), wheel([]any{1, 1, 1}))
	var verrs schema.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs.Field("weights"); !ok {
		t.Fatalf("expected weights error, got %v", verrs)
	}
	if calls.Load() != 0 {
		t.Fatalf("platform must not be called on invalid input")
	}
}

func TestCreateWheelRejectsAllZeroWeights(t *testing.T) {
	var calls atomic.Int32
	_, svc := newService(t, &calls)

	_, err := svc.CreateWheel(context.Background(), wheel([]any{0, 0, 0, 0, 0, 0, 0, 0}))
	var verrs schema.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("platform must not be called on invalid input")
	}
}

func TestUpdateWheelIsAudited(t *testing.T) {
	var calls atomic.Int32
	db, svc := newService(t, &calls)

	if _, err := svc.UpdateWheel(context.Background(), "w-1", wheel([]any{1, 0, 0, 0, 0, 0, 0, 3})); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	var row model.AuditLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if row.Resource != bonussvc.WheelResource || row.ResourceID != "w-1" {
		t.Fatalf("unexpected audit row %+v", row)
	}
}

func TestCreateBonusMaxDepositMustExceedMin(t *testing.T) {
	var calls atomic.Int32
	_, svc := newService(t, &calls)

	_, err := svc.Create(context.Background(), map[string]any{
		"name":       "Welcome",
		"type":       "deposit",
		"minDeposit": "50",
		"maxDeposit": "20",
		"status":     "1",
	})
	var verrs schema.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs.Field("maxDeposit"); !ok {
		t.Fatalf("expected maxDeposit error, got %v", verrs)
	}
	if calls.Load() != 0 {
		t.Fatalf("platform must not be called on invalid input")
	}
}

func TestUploadBanner(t *testing.T) {
	var calls atomic.Int32
	_, svc := newService(t, &calls)

	res, err := svc.UploadBanner(context.Background(), "summer.PNG", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if res.URL != "https://cdn.test/b.png" {
		t.Fatalf("unexpected url %q", res.URL)
	}
}

func TestUploadBannerRejectsNonImages(t *testing.T) {
	var calls atomic.Int32
	_, svc := newService(t, &calls)

	_, err := svc.UploadBanner(context.Background(), "payload.exe", strings.NewReader("MZ"))
	if !errors.Is(err, appErr.ErrUnsupportedUpload) {
		t.Fatalf("expected unsupported upload, got %v", err)
	}
	_, err = svc.UploadBanner(context.Background(), "", nil)
	if !errors.Is(err, appErr.ErrMissingUpload) {
		t.Fatalf("expected missing upload, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("rejected uploads must not reach the platform")
	}
}
