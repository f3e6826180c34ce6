package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// WebhookEventStore defines an interface for the audit log. Rows are
// append-only; MarkResult is the only mutation and is terminal.
type WebhookEventStore interface {
	Record(ctx context.Context, provider, eventType string, payload []byte) (*domain.WebhookEvent, error)
	MarkResult(ctx context.Context, id uint, success bool, errText string) error
	ByPublicID(ctx context.Context, publicID string) (*domain.WebhookEvent, error)
}
