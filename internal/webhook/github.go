package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/rs/zerolog/log"
)

// ProviderGitHub is the path key for GitHub deliveries.
const ProviderGitHub = "github"

// githubPushPayload mirrors the fields of a GitHub push event this
// service consumes. Everything else in the payload is ignored.
type githubPushPayload struct {
	Ref        string           `json:"ref"`
	Repository githubRepository `json:"repository"`
	Commits    []githubCommit   `json:"commits"`
}

type githubRepository struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

type githubCommit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Author    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

type githubPullRequestPayload struct {
	Action      string           `json:"action"`
	Repository  githubRepository `json:"repository"`
	PullRequest struct {
		Number    int64      `json:"number"`
		Title     string     `json:"title"`
		Body      *string    `json:"body"`
		State     string     `json:"state"`
		Merged    bool       `json:"merged"`
		HTMLURL   string     `json:"html_url"`
		CreatedAt *time.Time `json:"created_at"`
		Head      struct {
			Ref string `json:"ref"`
		} `json:"head"`
		Base struct {
			Ref string `json:"ref"`
		} `json:"base"`
		User struct {
			Login     string `json:"login"`
			Email     string `json:"email"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user"`
	} `json:"pull_request"`
}

// GitHubNormalizer parses GitHub webhook payloads. The event type comes
// from the X-Hub-Event header supplied by the handler.
type GitHubNormalizer struct{}

// NewGitHubNormalizer returns a normalizer for GitHub deliveries.
func NewGitHubNormalizer() *GitHubNormalizer {
	return &GitHubNormalizer{}
}

func (n *GitHubNormalizer) Provider() string { return ProviderGitHub }

// Normalize parses a GitHub push or pull_request payload.
func (n *GitHubNormalizer) Normalize(eventType string, payload []byte) (*Event, error) {
	switch eventType {
	case "push":
		return n.normalizePush(payload)
	case "pull_request":
		return n.normalizePullRequest(payload)
	default:
		return nil, fmt.Errorf("unsupported github event type %q", eventType)
	}
}

func (n *GitHubNormalizer) normalizePush(payload []byte) (*Event, error) {
	var p githubPushPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("parse github push payload: %w", err)
	}

	if p.Repository.Name == "" || p.Repository.HTMLURL == "" {
		return nil, errcodes.ErrMissingRepoIdentity
	}

	ev := &Event{
		Kind:      KindPush,
		EventType: "push",
		Repo: NormalizedRepo{
			Name: p.Repository.Name,
			URL:  p.Repository.HTMLURL,
		},
	}

	for _, c := range p.Commits {
		if c.ID == "" {
			log.Warn().Str("repository", p.Repository.Name).Msg("skipping github commit without hash")
			ev.Skipped++
			continue
		}
		ts := c.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		ev.Commits = append(ev.Commits, NormalizedCommit{
			Hash:         c.ID,
			Message:      c.Message,
			AuthorName:   c.Author.Name,
			AuthorEmail:  c.Author.Email,
			Timestamp:    ts,
			URL:          c.URL,
			FilesChanged: len(c.Added) + len(c.Removed) + len(c.Modified),
		})
	}

	return ev, nil
}

func (n *GitHubNormalizer) normalizePullRequest(payload []byte) (*Event, error) {
	var p githubPullRequestPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("parse github pull_request payload: %w", err)
	}

	if p.Repository.Name == "" || p.Repository.HTMLURL == "" {
		return nil, errcodes.ErrMissingRepoIdentity
	}
	if p.PullRequest.Number == 0 {
		return nil, fmt.Errorf("github pull_request payload missing number: %w", errcodes.ErrMissingItemIdentity)
	}

	createdAt := time.Now().UTC()
	if p.PullRequest.CreatedAt != nil {
		createdAt = *p.PullRequest.CreatedAt
	}

	description := ""
	if p.PullRequest.Body != nil {
		description = *p.PullRequest.Body
	}

	email := p.PullRequest.User.Email
	if email == "" && p.PullRequest.User.Login != "" {
		// GitHub PR payloads rarely carry the author email.
		email = strings.ToLower(p.PullRequest.User.Login) + "@users.noreply.github.com"
	}

	ev := &Event{
		Kind:      KindPullRequest,
		EventType: "pull_request",
		Repo: NormalizedRepo{
			Name: p.Repository.Name,
			URL:  p.Repository.HTMLURL,
		},
		PullRequest: &NormalizedPullRequest{
			NativeID:    p.PullRequest.Number,
			Title:       p.PullRequest.Title,
			Description: description,
			Status:      githubPullRequestStatus(p.PullRequest.State, p.PullRequest.Merged),
			SourceRef:   p.PullRequest.Head.Ref,
			TargetRef:   p.PullRequest.Base.Ref,
			URL:         p.PullRequest.HTMLURL,
			CreatedAt:   createdAt,
			AuthorName:  p.PullRequest.User.Login,
			AuthorEmail: email,
		},
	}

	return ev, nil
}

// githubPullRequestStatus maps GitHub's state/merged pair onto the
// canonical status vocabulary.
func githubPullRequestStatus(state string, merged bool) string {
	switch strings.ToLower(state) {
	case "closed":
		if merged {
			return domain.PullRequestStatusCompleted
		}
		return domain.PullRequestStatusAbandoned
	default:
		return domain.PullRequestStatusActive
	}
}
