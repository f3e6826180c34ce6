package domain

// Leaderboard metrics.
const (
	MetricCommits      = "commits"
	MetricPullRequests = "pull_requests"
	MetricAdditions    = "additions"
	MetricDeletions    = "deletions"
	MetricReviewScore  = "review_score"
)

// ValidMetric reports whether s names a leaderboard metric.
func ValidMetric(s string) bool {
	switch s {
	case MetricCommits, MetricPullRequests, MetricAdditions, MetricDeletions, MetricReviewScore:
		return true
	}
	return false
}

// EngineerStats is a per-engineer aggregate over a period. It is derived
// from commits, pull requests and reviews and regenerable at any time.
type EngineerStats struct {
	EngineerID      uint    `json:"engineer_id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Commits         int     `json:"commits"`
	PullRequests    int     `json:"pull_requests"`
	Additions       int     `json:"additions"`
	Deletions       int     `json:"deletions"`
	FilesChanged    int     `json:"files_changed"`
	ReviewsGiven    int     `json:"reviews_given"`
	ReviewsReceived int     `json:"reviews_received"`
	AvgReviewScore  float64 `json:"avg_review_score"`
}

// AnalyticsSummary is the system-wide aggregate over a period.
type AnalyticsSummary struct {
	Period             string  `json:"period"`
	Commits            int     `json:"commits"`
	PullRequests       int     `json:"pull_requests"`
	OpenPullRequests   int     `json:"open_pull_requests"`
	ClosedPullRequests int     `json:"closed_pull_requests"`
	ActiveEngineers    int     `json:"active_engineers"`
	ActiveRepositories int     `json:"active_repositories"`
	Additions          int     `json:"additions"`
	Deletions          int     `json:"deletions"`
	Reviews            int     `json:"reviews"`
	AvgReviewScore     float64 `json:"avg_review_score"`
}
