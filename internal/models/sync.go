package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncAudit records the outcome of one sync run. Rows are append-only:
// every run writes exactly one entry and nothing ever updates it.
type SyncAudit struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LastSync      time.Time `gorm:"not null;index:idx_sync_audits_last_sync" json:"lastSync"`
	TotalProducts int       `gorm:"not null;default:0" json:"totalProducts"`
	Success       bool      `gorm:"not null" json:"success"`
	ErrorMessage  *string   `gorm:"type:text" json:"errorMessage,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName specifies the table name for SyncAudit
func (SyncAudit) TableName() string {
	return "sync_audits"
}

// SyncResult is the structured outcome returned to sync callers. The
// orchestrator never propagates an error; callers check Success.
type SyncResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}
