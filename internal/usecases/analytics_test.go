package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/repository/mocks"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnalyticsUsecase(now time.Time) (*analyticsUsecase, *mocks.StatsStore, *mocks.EngineerStore) {
	stats := new(mocks.StatsStore)
	engineers := new(mocks.EngineerStore)
	uc := NewAnalyticsUsecase(stats, engineers).(*analyticsUsecase)
	uc.now = func() time.Time { return now }
	return uc, stats, engineers
}

func TestLeaderboardDefaultsAndPeriodWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, _ := newAnalyticsUsecase(now)

	entries := []domain.EngineerStats{{EngineerID: 1, Name: "Jane", Commits: 12}}
	stats.On("Leaderboard", mock.Anything, now.AddDate(0, 0, -30), domain.MetricCommits, 10).
		Return(entries, nil)

	// empty period and metric fall back to 30d / commits
	res, err := uc.Leaderboard(context.Background(), "", "", 10)

	require.NoError(t, err)
	assert.Equal(t, "30d", res.Period)
	assert.Equal(t, domain.MetricCommits, res.Metric)
	assert.Equal(t, entries, res.Entries)
	stats.AssertExpectations(t)
}

func TestLeaderboardLegacyPeriodVocabulary(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, _ := newAnalyticsUsecase(now)

	stats.On("Leaderboard", mock.Anything, now.AddDate(0, 0, -90), domain.MetricReviewScore, 5).
		Return([]domain.EngineerStats{}, nil)

	res, err := uc.Leaderboard(context.Background(), "QUARTERLY", domain.MetricReviewScore, 5)

	require.NoError(t, err)
	assert.Equal(t, "90d", res.Period)
}

func TestLeaderboardRejectsBadInput(t *testing.T) {
	uc, _, _ := newAnalyticsUsecase(time.Now())

	_, err := uc.Leaderboard(context.Background(), "14d", "", 10)
	assert.ErrorIs(t, err, errcodes.ErrInvalidPeriod)

	_, err = uc.Leaderboard(context.Background(), "7d", "velocity", 10)
	assert.ErrorIs(t, err, errcodes.ErrInvalidMetric)
}

func TestEngineerDetails(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, engineers := newAnalyticsUsecase(now)

	jane := &domain.Engineer{ID: 9, Email: "jane@x.com", Name: "Jane"}
	engineers.On("ByID", mock.Anything, uint(9)).Return(jane, nil)
	stats.On("EngineerStats", mock.Anything, uint(9), now.AddDate(0, 0, -7)).
		Return(&domain.EngineerStats{EngineerID: 9, Commits: 3}, nil)

	res, err := uc.EngineerDetails(context.Background(), 9, "7d")

	require.NoError(t, err)
	assert.Equal(t, *jane, res.Engineer)
	assert.Equal(t, "7d", res.Period)
	assert.Equal(t, 3, res.Stats.Commits)
}

func TestEngineerDetailsUnknownEngineer(t *testing.T) {
	uc, stats, engineers := newAnalyticsUsecase(time.Now())

	engineers.On("ByID", mock.Anything, uint(404)).Return(nil, errcodes.ErrNoRecordFound)

	_, err := uc.EngineerDetails(context.Background(), 404, "7d")

	assert.ErrorIs(t, err, errcodes.ErrNoRecordFound)
	stats.AssertNotCalled(t, "EngineerStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryStampsPeriodToken(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, _ := newAnalyticsUsecase(now)

	stats.On("Summary", mock.Anything, now.AddDate(0, 0, -365)).
		Return(&domain.AnalyticsSummary{Commits: 100}, nil)

	res, err := uc.Summary(context.Background(), "1y")

	require.NoError(t, err)
	assert.Equal(t, "1y", res.Period)
	assert.Equal(t, 100, res.Commits)
}

func TestTeamComparison(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, _ := newAnalyticsUsecase(now)

	engineers := []domain.EngineerStats{
		{EngineerID: 1, Commits: 10},
		{EngineerID: 2, Commits: 4},
	}
	stats.On("TeamComparison", mock.Anything, now.AddDate(0, 0, -30)).Return(engineers, nil)

	res, err := uc.TeamComparison(context.Background(), "MONTHLY")

	require.NoError(t, err)
	assert.Equal(t, "30d", res.Period)
	assert.Len(t, res.Engineers, 2)
}
