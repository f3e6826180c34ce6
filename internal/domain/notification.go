package domain

import "time"

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Notification is the derived event fanned out to subscribers after a
// successful reconciliation. Delivery is best-effort; there is no queue.
type Notification struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Severity       Severity          `json:"severity"`
	Timestamp      time.Time         `json:"timestamp"`
	RepositoryID   uint              `json:"repository_id,omitempty"`
	RepositoryName string            `json:"repository_name,omitempty"`
	ActionURL      string            `json:"action_url,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ReviewSeverity maps a review score to a severity: scores of 8 and
// above read as success, below 6 as error.
func ReviewSeverity(score float64) Severity {
	switch {
	case score >= 8:
		return SeveritySuccess
	case score < 6:
		return SeverityError
	default:
		return SeverityInfo
	}
}

// PullRequestSeverity maps a canonical pull request status to a severity.
func PullRequestSeverity(status string) Severity {
	switch status {
	case PullRequestStatusCompleted, "merged":
		return SeveritySuccess
	case PullRequestStatusAbandoned, "closed":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
