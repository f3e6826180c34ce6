package dtos

// ReviewInput is the request body for creating a review.
type ReviewInput struct {
	Type          string   `json:"type"`
	Content       string   `json:"content"`
	Score         *float64 `json:"score,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
	Status        string   `json:"status,omitempty"`
	PullRequestID *uint    `json:"pull_request_id,omitempty"`
	CommitID      *uint    `json:"commit_id,omitempty"`
	EngineerID    *uint    `json:"engineer_id,omitempty"`
}
