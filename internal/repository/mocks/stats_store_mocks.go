package mocks

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/stretchr/testify/mock"
)

// StatsStore mock
type StatsStore struct {
	mock.Mock
}

func (m *StatsStore) Leaderboard(ctx context.Context, since time.Time, metric string, limit int) ([]domain.EngineerStats, error) {
	args := m.Called(ctx, since, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EngineerStats), args.Error(1)
}

func (m *StatsStore) EngineerStats(ctx context.Context, engineerID uint, since time.Time) (*domain.EngineerStats, error) {
	args := m.Called(ctx, engineerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineerStats), args.Error(1)
}

func (m *StatsStore) Summary(ctx context.Context, since time.Time) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}

func (m *StatsStore) TeamComparison(ctx context.Context, since time.Time) ([]domain.EngineerStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EngineerStats), args.Error(1)
}
