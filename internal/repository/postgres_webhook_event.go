package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
)

// GormWebhookEventStore is a GORM-based implementation of WebhookEventStore
type GormWebhookEventStore struct {
	db *gorm.DB
}

// NewGormWebhookEventStore initializes a new GormWebhookEventStore
func NewGormWebhookEventStore(db *gorm.DB) WebhookEventStore {
	return &GormWebhookEventStore{db: db}
}

// Record appends an audit row in the received state, before any parsing
// of the payload has happened.
func (s *GormWebhookEventStore) Record(ctx context.Context, provider, eventType string, payload []byte) (*domain.WebhookEvent, error) {
	event := WebhookEvent{
		PublicID:  uuid.NewString(),
		Provider:  provider,
		EventType: eventType,
		Payload:   payload,
		Processed: false,
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}
	return event.ToDomain(), nil
}

// MarkResult flips the row to its terminal state. A row already
// processed is left untouched.
func (s *GormWebhookEventStore) MarkResult(ctx context.Context, id uint, success bool, errText string) error {
	now := time.Now().UTC()

	if !success && errText == "" {
		errText = "processing failed"
	}
	if success {
		errText = ""
	}

	return s.db.WithContext(ctx).Model(&WebhookEvent{}).
		Where("id = ? AND processed = ?", id, false).
		Updates(map[string]any{
			"processed":    true,
			"error":        errText,
			"processed_at": &now,
		}).Error
}

func (s *GormWebhookEventStore) ByPublicID(ctx context.Context, publicID string) (*domain.WebhookEvent, error) {
	var event WebhookEvent
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).Find(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return event.ToDomain(), nil
}
