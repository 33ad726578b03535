package services

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"storefront-catalog-service/internal/feed"
	"storefront-catalog-service/internal/models"
	"storefront-catalog-service/internal/repository"
)

// FeedFetcher abstracts the inventory feed client
type FeedFetcher interface {
	FetchRaw(ctx context.Context) ([]json.RawMessage, error)
}

// EventPublisher publishes sync lifecycle events to interested consumers
type EventPublisher interface {
	PublishSyncCompleted(ctx context.Context, result *models.SyncResult)
}

// SyncService orchestrates one batch sync run: fetch the feed, normalize
// each record, upsert by reference, then append exactly one audit entry.
// Runs are sequential and non-reentrant; overlapping triggers are rejected
// before any work happens.
type SyncService struct {
	products  repository.ProductRepositoryInterface
	audits    repository.SyncRepositoryInterface
	feed      FeedFetcher
	publisher EventPublisher
	logger    *logrus.Entry
	running   atomic.Bool
}

// NewSyncService creates a new sync service
func NewSyncService(
	products repository.ProductRepositoryInterface,
	audits repository.SyncRepositoryInterface,
	feedClient FeedFetcher,
	logger *logrus.Logger,
) *SyncService {
	return &SyncService{
		products: products,
		audits:   audits,
		feed:     feedClient,
		logger:   logger.WithField("component", "sync"),
	}
}

// SetPublisher attaches an optional event publisher
func (s *SyncService) SetPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Run executes one incremental sync. It never returns an error: the
// outcome, including any failure message, is in the result and mirrored in
// the audit log.
func (s *SyncService) Run(ctx context.Context) *models.SyncResult {
	return s.run(ctx, false)
}

// RunFull executes the destructive full-resync variant: the product table
// is cleared before repopulating. A failure mid-run leaves the table
// partially repopulated; that is the accepted risk of this variant.
func (s *SyncService) RunFull(ctx context.Context) *models.SyncResult {
	return s.run(ctx, true)
}

func (s *SyncService) run(ctx context.Context, destructive bool) *models.SyncResult {
	if !s.running.CompareAndSwap(false, true) {
		return &models.SyncResult{Success: false, Error: "a sync run is already in progress"}
	}
	defer s.running.Store(false)

	s.logger.WithField("destructive", destructive).Info("Sync started")

	raws, err := s.feed.FetchRaw(ctx)
	if err != nil {
		return s.fail(ctx, err.Error())
	}
	s.logger.WithField("records", len(raws)).Info("Fetched feed records")

	if destructive {
		if err := s.products.DeleteAll(ctx); err != nil {
			return s.fail(ctx, "failed to clear products: "+err.Error())
		}
		s.logger.Info("Cleared existing products")
	}

	synced := 0
	for i, raw := range raws {
		var rec feed.SupplierRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.logger.WithFields(logrus.Fields{
				"index": i,
				"error": err.Error(),
			}).Warn("Skipping malformed feed record")
			continue
		}

		product, err := NormalizeRecord(&rec)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"index": i,
				"error": err.Error(),
			}).Warn("Skipping record that failed normalization")
			continue
		}

		if err := s.products.Upsert(ctx, product); err != nil {
			s.logger.WithFields(logrus.Fields{
				"reference": product.Reference,
				"error":     err.Error(),
			}).Warn("Skipping record that failed to persist")
			continue
		}
		synced++
	}

	s.writeAudit(ctx, synced, true, "")
	s.products.InvalidateCaches(ctx)

	result := &models.SyncResult{Success: true, Count: synced}
	s.logger.WithFields(logrus.Fields{
		"synced":  synced,
		"skipped": len(raws) - synced,
	}).Info("Sync completed")

	if s.publisher != nil {
		s.publisher.PublishSyncCompleted(ctx, result)
	}

	return result
}

// fail records a failed run. Feed-level failures write an audit entry with
// zero products and skip all per-record processing.
func (s *SyncService) fail(ctx context.Context, message string) *models.SyncResult {
	s.logger.WithField("error", message).Error("Sync failed")
	s.writeAudit(ctx, 0, false, message)

	result := &models.SyncResult{Success: false, Count: 0, Error: message}
	if s.publisher != nil {
		s.publisher.PublishSyncCompleted(ctx, result)
	}
	return result
}

func (s *SyncService) writeAudit(ctx context.Context, count int, success bool, message string) {
	audit := &models.SyncAudit{
		ID:            uuid.New(),
		LastSync:      time.Now(),
		TotalProducts: count,
		Success:       success,
	}
	if message != "" {
		audit.ErrorMessage = &message
	}
	if err := s.audits.CreateAudit(ctx, audit); err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to write sync audit entry")
	}
}
