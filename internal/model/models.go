package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Operator struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"unique;not null;size:64"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string
	Status       string `gorm:"default:active;not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	OperatorActive   = "active"
	OperatorDisabled = "disabled"
)

func (o Operator) Active() bool {
	return strings.EqualFold(o.Status, OperatorActive)
}

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// AuditLog is one mutating action an operator performed against the platform.
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OperatorID int64          `gorm:"index" json:"operatorId"`
	Action     string         `gorm:"size:32;not null" json:"action"` // create/update/delete/upload
	Resource   string         `gorm:"size:64;index;not null" json:"resource"`
	ResourceID string         `gorm:"size:128" json:"resourceId,omitempty"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
	Outcome    string         `gorm:"size:16;not null" json:"outcome"`
	Error      string         `gorm:"size:512" json:"error,omitempty"`
	RequestID  string         `gorm:"size:64" json:"requestId,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}
