// Package webhook converts provider-native webhook payloads into the
// canonical records consumed by the ingestion usecase. Normalizers are
// pure transforms: all persistence happens in the usecase layer.
package webhook

import "time"

// Event kinds produced by normalization.
const (
	KindPush        = "push"
	KindPullRequest = "pull_request"
)

// NormalizedRepo carries the repository identity extracted from a
// payload. Name and URL are both required; a payload missing either
// fails the whole delivery.
type NormalizedRepo struct {
	Name string
	URL  string
}

// NormalizedCommit is one commit from a push batch. Change stats default
// to zero when the provider does not supply them.
type NormalizedCommit struct {
	Hash         string
	Message      string
	AuthorName   string
	AuthorEmail  string
	Timestamp    time.Time
	URL          string
	FilesChanged int
	Additions    int
	Deletions    int
}

// NormalizedPullRequest is the canonical form of a pull request event.
// Status is mapped onto the canonical vocabulary (active, completed,
// abandoned).
type NormalizedPullRequest struct {
	NativeID    int64
	Title       string
	Description string
	Status      string
	SourceRef   string
	TargetRef   string
	URL         string
	CreatedAt   time.Time
	AuthorName  string
	AuthorEmail string
}

// Event is the result of normalizing one delivery. Exactly one of
// Commits or PullRequest is populated depending on Kind. Skipped counts
// batch items dropped for missing identity fields.
type Event struct {
	Kind        string
	EventType   string
	Repo        NormalizedRepo
	Commits     []NormalizedCommit
	PullRequest *NormalizedPullRequest
	Skipped     int
}

// Normalizer parses a provider's raw payloads.
type Normalizer interface {
	// Provider returns the provider key served by this normalizer.
	Provider() string
	// Normalize parses a raw payload into an Event. eventType may be
	// empty for providers that carry the event type inside the envelope.
	Normalize(eventType string, payload []byte) (*Event, error)
}
