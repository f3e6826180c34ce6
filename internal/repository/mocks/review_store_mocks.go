package mocks

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/stretchr/testify/mock"
)

// ReviewStore mock
type ReviewStore struct {
	mock.Mock
}

func (m *ReviewStore) Save(ctx context.Context, review domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewStore) ByPullRequest(ctx context.Context, pullRequestID uint) ([]domain.Review, error) {
	args := m.Called(ctx, pullRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}
