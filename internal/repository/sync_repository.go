package repository

import (
	"context"
	"time"

	"storefront-catalog-service/internal/models"
	"gorm.io/gorm"
)

// SyncRepositoryInterface abstracts sync-audit persistence for services
// and tests.
type SyncRepositoryInterface interface {
	CreateAudit(ctx context.Context, audit *models.SyncAudit) error
	LatestAudit(ctx context.Context) (*models.SyncAudit, error)
	ListAudits(ctx context.Context, limit int) ([]models.SyncAudit, error)
	GetStats(ctx context.Context) (*SyncStats, error)
}

// SyncRepository handles database operations for the append-only sync
// audit log.
type SyncRepository struct {
	db *gorm.DB
}

// NewSyncRepository creates a new sync repository
func NewSyncRepository(db *gorm.DB) *SyncRepository {
	return &SyncRepository{db: db}
}

// CreateAudit appends one audit entry. Audit rows are never updated.
func (r *SyncRepository) CreateAudit(ctx context.Context, audit *models.SyncAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

// LatestAudit retrieves the most recent audit entry
func (r *SyncRepository) LatestAudit(ctx context.Context) (*models.SyncAudit, error) {
	var audit models.SyncAudit
	err := r.db.WithContext(ctx).
		Order("last_sync DESC").
		First(&audit).Error
	if err != nil {
		return nil, err
	}
	return &audit, nil
}

// ListAudits retrieves recent audit entries, newest first
func (r *SyncRepository) ListAudits(ctx context.Context, limit int) ([]models.SyncAudit, error) {
	if limit <= 0 {
		limit = 20
	}
	var audits []models.SyncAudit
	err := r.db.WithContext(ctx).
		Order("last_sync DESC").
		Limit(limit).
		Find(&audits).Error
	return audits, err
}

// GetStats aggregates the audit log for the admin surface
func (r *SyncRepository) GetStats(ctx context.Context) (*SyncStats, error) {
	stats := &SyncStats{}

	if err := r.db.WithContext(ctx).Model(&models.SyncAudit{}).Count(&stats.TotalRuns).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.SyncAudit{}).
		Where("success = ?", true).
		Count(&stats.SucceededRuns).Error; err != nil {
		return nil, err
	}
	stats.FailedRuns = stats.TotalRuns - stats.SucceededRuns

	var lastSuccess models.SyncAudit
	if err := r.db.WithContext(ctx).
		Where("success = ?", true).
		Order("last_sync DESC").
		First(&lastSuccess).Error; err == nil {
		stats.LastSuccessAt = &lastSuccess.LastSync
	}

	return stats, nil
}

// SyncStats contains aggregate sync-run statistics
type SyncStats struct {
	TotalRuns     int64      `json:"totalRuns"`
	SucceededRuns int64      `json:"succeededRuns"`
	FailedRuns    int64      `json:"failedRuns"`
	LastSuccessAt *time.Time `json:"lastSuccessAt,omitempty"`
}
