package repository

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// StatsStore computes aggregate statistics. Everything here is derived
// from commits, pull requests and reviews; nothing is a source of truth.
type StatsStore interface {
	Leaderboard(ctx context.Context, since time.Time, metric string, limit int) ([]domain.EngineerStats, error)
	EngineerStats(ctx context.Context, engineerID uint, since time.Time) (*domain.EngineerStats, error)
	Summary(ctx context.Context, since time.Time) (*domain.AnalyticsSummary, error)
	TeamComparison(ctx context.Context, since time.Time) ([]domain.EngineerStats, error)
}
