package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"backoffice/internal/model"
	auditsvc "backoffice/internal/service/audit"
	pkgAuth "backoffice/pkg/auth"
	"backoffice/pkg/requestid"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*gorm.DB, *auditsvc.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate audit model: %v", err)
	}
	return db, auditsvc.NewService(db)
}

func TestRecordCapturesContext(t *testing.T) {
	db, svc := newTestService(t)

	ctx := pkgAuth.WithOperator(requestid.WithContext(context.Background(), "req-1"), 9)
	svc.Record(ctx, auditsvc.Entry{
		Action:     auditsvc.ActionCreate,
		Resource:   "cashback",
		ResourceID: "cb-1",
		Payload:    map[string]any{"name": "Weekly"},
	})

	var row model.AuditLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if row.OperatorID != 9 || row.RequestID != "req-1" {
		t.Fatalf("unexpected operator/request: %d %q", row.OperatorID, row.RequestID)
	}
	if row.Outcome != model.OutcomeSuccess {
		t.Fatalf("expected success outcome, got %q", row.Outcome)
	}
	var payload map[string]any
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if payload["name"] != "Weekly" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestRecordFailure(t *testing.T) {
	db, svc := newTestService(t)

	svc.Record(context.Background(), auditsvc.Entry{
		Action:   auditsvc.ActionDelete,
		Resource: "tier",
		Err:      errors.New("Tier is in use"),
	})

	var row model.AuditLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if row.Outcome != model.OutcomeFailed || row.Error != "Tier is in use" {
		t.Fatalf("unexpected failure row: %+v", row)
	}
}

func TestList(t *testing.T) {
	_, svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Record(ctx, auditsvc.Entry{Action: auditsvc.ActionUpdate, Resource: "bonus"})
	}
	svc.Record(ctx, auditsvc.Entry{Action: auditsvc.ActionUpdate, Resource: "tier"})

	res, err := svc.List(ctx, auditsvc.ListParams{Resource: "bonus", Size: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("expected 3 bonus rows, got %d", res.Total)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected page of 2, got %d", len(res.Items))
	}
	if res.Items[0].ID < res.Items[1].ID {
		t.Fatalf("expected newest first")
	}

	res, err = svc.List(ctx, auditsvc.ListParams{Page: 2, Size: 2, Resource: "bonus"})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 row on page 2, got %d", len(res.Items))
	}
}

func TestRecordOnNilService(t *testing.T) {
	var svc *auditsvc.Service
	svc.Record(context.Background(), auditsvc.Entry{Action: auditsvc.ActionCreate})
}

func TestRecordTruncatesErrorOnRuneBoundary(t *testing.T) {
	db, svc := newTestService(t)

	// 3-byte runes: 512 is not a multiple of 3.
	msg := strings.Repeat("€", 200)
	svc.Record(context.Background(), auditsvc.Entry{
		Action:     auditsvc.ActionUpdate,
		Resource:   "bonus",
		ResourceID: "b-1",
		Err:        errors.New(msg),
	})

	var row model.AuditLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if len(row.Error) > 512 {
		t.Fatalf("error column overflow: %d bytes", len(row.Error))
	}
	if !utf8.ValidString(row.Error) {
		t.Fatalf("stored error is not valid utf-8")
	}
	if row.Error != strings.Repeat("€", 170) {
		t.Fatalf("expected 170 whole runes, got %d bytes", len(row.Error))
	}
}
