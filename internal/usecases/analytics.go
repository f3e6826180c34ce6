package usecases

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/http/dtos"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
)

// AnalyticsUsecase serves the aggregate read surface. All endpoints
// share one period vocabulary through domain.ParsePeriod.
type AnalyticsUsecase interface {
	Leaderboard(ctx context.Context, period, metric string, limit int) (*dtos.LeaderboardResponse, error)
	EngineerDetails(ctx context.Context, engineerID uint, period string) (*dtos.EngineerDetailsResponse, error)
	Summary(ctx context.Context, period string) (*domain.AnalyticsSummary, error)
	TeamComparison(ctx context.Context, period string) (*dtos.TeamComparisonResponse, error)
}

type analyticsUsecase struct {
	stats     repository.StatsStore
	engineers repository.EngineerStore
	now       func() time.Time
}

// NewAnalyticsUsecase creates the analytics usecase.
func NewAnalyticsUsecase(stats repository.StatsStore, engineers repository.EngineerStore) AnalyticsUsecase {
	return &analyticsUsecase{
		stats:     stats,
		engineers: engineers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *analyticsUsecase) Leaderboard(ctx context.Context, period, metric string, limit int) (*dtos.LeaderboardResponse, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = domain.MetricCommits
	}
	if !domain.ValidMetric(metric) {
		return nil, errcodes.ErrInvalidMetric
	}

	entries, err := u.stats.Leaderboard(ctx, p.Start(u.now()), metric, limit)
	if err != nil {
		return nil, err
	}
	return &dtos.LeaderboardResponse{
		Period:  p.Token,
		Metric:  metric,
		Entries: entries,
	}, nil
}

func (u *analyticsUsecase) EngineerDetails(ctx context.Context, engineerID uint, period string) (*dtos.EngineerDetailsResponse, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	engineer, err := u.engineers.ByID(ctx, engineerID)
	if err != nil {
		return nil, err
	}

	stats, err := u.stats.EngineerStats(ctx, engineerID, p.Start(u.now()))
	if err != nil {
		return nil, err
	}

	return &dtos.EngineerDetailsResponse{
		Engineer: *engineer,
		Period:   p.Token,
		Stats:    *stats,
	}, nil
}

func (u *analyticsUsecase) Summary(ctx context.Context, period string) (*domain.AnalyticsSummary, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	summary, err := u.stats.Summary(ctx, p.Start(u.now()))
	if err != nil {
		return nil, err
	}
	summary.Period = p.Token
	return summary, nil
}

func (u *analyticsUsecase) TeamComparison(ctx context.Context, period string) (*dtos.TeamComparisonResponse, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	engineers, err := u.stats.TeamComparison(ctx, p.Start(u.now()))
	if err != nil {
		return nil, err
	}
	return &dtos.TeamComparisonResponse{
		Period:    p.Token,
		Engineers: engineers,
	}, nil
}
