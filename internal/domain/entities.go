// Package domain holds the canonical entities shared by the stores,
// usecases and HTTP layer.
package domain

import (
	"strings"
	"time"
)

// Repository is a source-control repository known to the system. It is
// created on the first webhook referencing it and never hard-deleted;
// deactivation flips Active instead.
type Repository struct {
	ID            uint      `json:"id"`
	PublicID      string    `json:"public_id"`
	ProjectID     string    `json:"project_id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	DefaultBranch string    `json:"default_branch"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Engineer is identified strictly by email. The display name is fixed at
// creation and never overwritten by later deliveries.
type Engineer struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Active    bool      `json:"active"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PullRequest is owned by exactly one repository and identified by the
// provider-native id within it.
type PullRequest struct {
	ID           uint       `json:"id"`
	NativeID     int64      `json:"native_id"`
	RepositoryID uint       `json:"repository_id"`
	EngineerID   *uint      `json:"engineer_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	SourceRef    string     `json:"source_ref"`
	TargetRef    string     `json:"target_ref"`
	URL          string     `json:"url"`
	OpenedAt     time.Time  `json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Commit content is immutable once recorded: a duplicate delivery of the
// same hash within a repository is skipped, never updated.
type Commit struct {
	ID            uint      `json:"id"`
	CommitHash    string    `json:"commit_hash"`
	RepositoryID  uint      `json:"repository_id"`
	PullRequestID *uint     `json:"pull_request_id,omitempty"`
	EngineerID    *uint     `json:"engineer_id,omitempty"`
	Message       string    `json:"message"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"author_email"`
	Date          time.Time `json:"date"`
	URL           string    `json:"url"`
	FilesChanged  int       `json:"files_changed"`
	Additions     int       `json:"additions"`
	Deletions     int       `json:"deletions"`
	CreatedAt     time.Time `json:"created_at"`
}

// Review types.
const (
	ReviewTypeAI    = "ai"
	ReviewTypeHuman = "human"
)

// Review statuses.
const (
	ReviewStatusPending   = "pending"
	ReviewStatusApproved  = "approved"
	ReviewStatusRejected  = "rejected"
	ReviewStatusNeedsWork = "needs-work"
)

// Review belongs to a pull request or a commit and weakly references a
// reviewer engineer.
type Review struct {
	ID            uint      `json:"id"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	Score         *float64  `json:"score,omitempty"`
	Suggestions   []string  `json:"suggestions,omitempty"`
	Status        string    `json:"status"`
	PullRequestID *uint     `json:"pull_request_id,omitempty"`
	CommitID      *uint     `json:"commit_id,omitempty"`
	EngineerID    *uint     `json:"engineer_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Canonical pull request statuses. Provider vocabularies are mapped onto
// this set by the normalizers.
const (
	PullRequestStatusActive    = "active"
	PullRequestStatusCompleted = "completed"
	PullRequestStatusAbandoned = "abandoned"
)

// terminal statuses close a pull request; the transition is one-way.
var terminalStatuses = map[string]struct{}{
	PullRequestStatusCompleted: {},
	PullRequestStatusAbandoned: {},
	"closed":                   {},
	"merged":                   {},
}

// IsTerminalStatus reports whether a pull request status closes the PR.
// The check is case-insensitive.
func IsTerminalStatus(status string) bool {
	_, ok := terminalStatuses[strings.ToLower(status)]
	return ok
}
