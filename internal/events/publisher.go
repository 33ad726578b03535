package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"storefront-catalog-service/internal/models"
)

// SubjectSyncCompleted carries the outcome of every sync run.
const SubjectSyncCompleted = "catalog.sync.completed"

// Publisher emits catalog lifecycle events over NATS. It is optional:
// the service runs fine without a broker and main only wires it when
// NATS_URL is set.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and creates a catalog events publisher
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("storefront-catalog-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events"),
	}, nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// syncCompletedEvent is the wire payload for SubjectSyncCompleted
type syncCompletedEvent struct {
	Success    bool      `json:"success"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PublishSyncCompleted publishes a sync outcome. Publishing is fire and
// forget so the sync path is never blocked on the broker.
func (p *Publisher) PublishSyncCompleted(ctx context.Context, result *models.SyncResult) {
	event := syncCompletedEvent{
		Success:    result.Success,
		Count:      result.Count,
		Error:      result.Error,
		OccurredAt: time.Now(),
	}

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithField("error", err.Error()).Error("Failed to encode sync event")
			return
		}
		if err := p.conn.Publish(SubjectSyncCompleted, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"subject": SubjectSyncCompleted,
				"error":   err.Error(),
			}).Error("Failed to publish sync event")
			return
		}
		p.logger.WithFields(logrus.Fields{
			"subject": SubjectSyncCompleted,
			"success": event.Success,
			"count":   event.Count,
		}).Info("Sync event published")
	}()
}
