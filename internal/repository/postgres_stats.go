package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
)

// GormStatsStore is a GORM-based implementation of StatsStore
type GormStatsStore struct {
	db *gorm.DB
}

// NewGormStatsStore initializes a new GormStatsStore
func NewGormStatsStore(db *gorm.DB) StatsStore {
	return &GormStatsStore{db: db}
}

// engineerStatsQuery aggregates per-engineer activity since a point in
// time. Reviews received are counted through the pull requests the
// engineer created; the average score is over those same reviews.
const engineerStatsQuery = `
SELECT e.id AS engineer_id,
       e.email,
       e.name,
       COALESCE(c.commits, 0)          AS commits,
       COALESCE(c.additions, 0)        AS additions,
       COALESCE(c.deletions, 0)        AS deletions,
       COALESCE(c.files_changed, 0)    AS files_changed,
       COALESCE(p.pull_requests, 0)    AS pull_requests,
       COALESCE(rg.reviews_given, 0)   AS reviews_given,
       COALESCE(rr.reviews_received, 0) AS reviews_received,
       COALESCE(rr.avg_review_score, 0) AS avg_review_score
FROM engineers e
LEFT JOIN (
    SELECT engineer_id,
           COUNT(id)          AS commits,
           SUM(additions)     AS additions,
           SUM(deletions)     AS deletions,
           SUM(files_changed) AS files_changed
    FROM commits
    WHERE date >= ?
    GROUP BY engineer_id
) c ON c.engineer_id = e.id
LEFT JOIN (
    SELECT engineer_id, COUNT(id) AS pull_requests
    FROM pull_requests
    WHERE opened_at >= ?
    GROUP BY engineer_id
) p ON p.engineer_id = e.id
LEFT JOIN (
    SELECT engineer_id, COUNT(id) AS reviews_given
    FROM reviews
    WHERE created_at >= ?
    GROUP BY engineer_id
) rg ON rg.engineer_id = e.id
LEFT JOIN (
    SELECT pr.engineer_id      AS engineer_id,
           COUNT(r.id)         AS reviews_received,
           AVG(r.score)        AS avg_review_score
    FROM reviews r
    JOIN pull_requests pr ON r.pull_request_id = pr.id
    WHERE r.created_at >= ?
    GROUP BY pr.engineer_id
) rr ON rr.engineer_id = e.id
`

var metricOrderColumns = map[string]string{
	domain.MetricCommits:      "commits",
	domain.MetricPullRequests: "pull_requests",
	domain.MetricAdditions:    "additions",
	domain.MetricDeletions:    "deletions",
	domain.MetricReviewScore:  "avg_review_score",
}

func (s *GormStatsStore) Leaderboard(ctx context.Context, since time.Time, metric string, limit int) ([]domain.EngineerStats, error) {
	column, ok := metricOrderColumns[metric]
	if !ok {
		return nil, errcodes.ErrInvalidMetric
	}
	if limit <= 0 {
		limit = 10
	}

	var rows []domain.EngineerStats
	query := engineerStatsQuery + fmt.Sprintf(" ORDER BY %s DESC LIMIT ?", column)
	err := s.db.WithContext(ctx).
		Raw(query, since, since, since, since, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStatsStore) EngineerStats(ctx context.Context, engineerID uint, since time.Time) (*domain.EngineerStats, error) {
	var rows []domain.EngineerStats
	query := engineerStatsQuery + " WHERE e.id = ?"
	err := s.db.WithContext(ctx).
		Raw(query, since, since, since, since, engineerID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return &rows[0], nil
}

func (s *GormStatsStore) TeamComparison(ctx context.Context, since time.Time) ([]domain.EngineerStats, error) {
	var rows []domain.EngineerStats
	query := engineerStatsQuery + " ORDER BY commits DESC"
	err := s.db.WithContext(ctx).
		Raw(query, since, since, since, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStatsStore) Summary(ctx context.Context, since time.Time) (*domain.AnalyticsSummary, error) {
	summary := &domain.AnalyticsSummary{}

	var commitAgg struct {
		Commits            int
		Additions          int
		Deletions          int
		ActiveEngineers    int
		ActiveRepositories int
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(id)                     AS commits,
		       COALESCE(SUM(additions), 0)  AS additions,
		       COALESCE(SUM(deletions), 0)  AS deletions,
		       COUNT(DISTINCT engineer_id)  AS active_engineers,
		       COUNT(DISTINCT repository_id) AS active_repositories
		FROM commits
		WHERE date >= ?`, since).
		Scan(&commitAgg).Error
	if err != nil {
		return nil, err
	}
	summary.Commits = commitAgg.Commits
	summary.Additions = commitAgg.Additions
	summary.Deletions = commitAgg.Deletions
	summary.ActiveEngineers = commitAgg.ActiveEngineers
	summary.ActiveRepositories = commitAgg.ActiveRepositories

	var prAgg struct {
		Total  int
		Open   int
		Closed int
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT COUNT(id) AS total,
		       COALESCE(SUM(CASE WHEN closed_at IS NULL THEN 1 ELSE 0 END), 0) AS open,
		       COALESCE(SUM(CASE WHEN closed_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS closed
		FROM pull_requests
		WHERE opened_at >= ?`, since).
		Scan(&prAgg).Error
	if err != nil {
		return nil, err
	}
	summary.PullRequests = prAgg.Total
	summary.OpenPullRequests = prAgg.Open
	summary.ClosedPullRequests = prAgg.Closed

	var reviewAgg struct {
		Reviews  int
		AvgScore float64
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT COUNT(id) AS reviews,
		       COALESCE(AVG(score), 0) AS avg_score
		FROM reviews
		WHERE created_at >= ?`, since).
		Scan(&reviewAgg).Error
	if err != nil {
		return nil, err
	}
	summary.Reviews = reviewAgg.Reviews
	summary.AvgReviewScore = reviewAgg.AvgScore

	return summary, nil
}
