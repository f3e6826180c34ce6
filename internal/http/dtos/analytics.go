package dtos

import "github.com/pulseboard/pulseboard/internal/domain"

// LeaderboardResponse is the ranked engineer list for one period/metric.
type LeaderboardResponse struct {
	Period  string                 `json:"period"`
	Metric  string                 `json:"metric"`
	Entries []domain.EngineerStats `json:"entries"`
}

// EngineerDetailsResponse combines an engineer with their period stats.
type EngineerDetailsResponse struct {
	Engineer domain.Engineer      `json:"engineer"`
	Period   string               `json:"period"`
	Stats    domain.EngineerStats `json:"stats"`
}

// TeamComparisonResponse is the per-engineer comparison for one period.
type TeamComparisonResponse struct {
	Period    string                 `json:"period"`
	Engineers []domain.EngineerStats `json:"engineers"`
}
