package mocks

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/stretchr/testify/mock"
)

// WebhookEventStore mock
type WebhookEventStore struct {
	mock.Mock
}

func (m *WebhookEventStore) Record(ctx context.Context, provider, eventType string, payload []byte) (*domain.WebhookEvent, error) {
	args := m.Called(ctx, provider, eventType, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Error(1)
}

func (m *WebhookEventStore) MarkResult(ctx context.Context, id uint, success bool, errText string) error {
	args := m.Called(ctx, id, success, errText)
	return args.Error(0)
}

func (m *WebhookEventStore) ByPublicID(ctx context.Context, publicID string) (*domain.WebhookEvent, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Error(1)
}
