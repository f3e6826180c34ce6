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

// ProviderAzureDevOps is the path key for Azure DevOps deliveries.
const ProviderAzureDevOps = "azure-devops"

// Azure DevOps service-hook event types.
const (
	azureEventPush      = "git.push"
	azureEventPRCreated = "git.pullrequest.created"
	azureEventPRUpdated = "git.pullrequest.updated"
)

// azureEnvelope is the outer shape of every Azure DevOps service hook.
// The event type travels inside the body, not in a header.
type azureEnvelope struct {
	EventType string          `json:"eventType"`
	Resource  json.RawMessage `json:"resource"`
}

type azureRepository struct {
	Name      string `json:"name"`
	RemoteURL string `json:"remoteUrl"`
	WebURL    string `json:"webUrl"`
	Project   struct {
		Name string `json:"name"`
	} `json:"project"`
}

type azurePushResource struct {
	Repository azureRepository `json:"repository"`
	RefUpdates []struct {
		Name string `json:"name"`
	} `json:"refUpdates"`
	Commits []struct {
		CommitID string `json:"commitId"`
		Comment  string `json:"comment"`
		URL      string `json:"url"`
		Author   struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
		ChangeCounts struct {
			Add    int `json:"Add"`
			Edit   int `json:"Edit"`
			Delete int `json:"Delete"`
		} `json:"changeCounts"`
	} `json:"commits"`
}

type azurePullRequestResource struct {
	Repository    azureRepository `json:"repository"`
	PullRequestID int64           `json:"pullRequestId"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	Status        string          `json:"status"`
	SourceRefName string          `json:"sourceRefName"`
	TargetRefName string          `json:"targetRefName"`
	URL           string          `json:"url"`
	CreationDate  *time.Time      `json:"creationDate"`
	CreatedBy     struct {
		DisplayName string `json:"displayName"`
		UniqueName  string `json:"uniqueName"`
	} `json:"createdBy"`
}

// AzureDevOpsNormalizer parses Azure DevOps service-hook payloads.
type AzureDevOpsNormalizer struct{}

// NewAzureDevOpsNormalizer returns a normalizer for Azure DevOps deliveries.
func NewAzureDevOpsNormalizer() *AzureDevOpsNormalizer {
	return &AzureDevOpsNormalizer{}
}

func (n *AzureDevOpsNormalizer) Provider() string { return ProviderAzureDevOps }

// Normalize parses an Azure DevOps delivery. When eventType is empty it
// is read from the envelope's eventType field.
func (n *AzureDevOpsNormalizer) Normalize(eventType string, payload []byte) (*Event, error) {
	var env azureEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("parse azure devops envelope: %w", err)
	}
	if eventType == "" {
		eventType = env.EventType
	}
	if len(env.Resource) == 0 {
		return nil, errcodes.ErrMissingRepoIdentity
	}

	switch eventType {
	case azureEventPush:
		return n.normalizePush(eventType, env.Resource)
	case azureEventPRCreated, azureEventPRUpdated:
		return n.normalizePullRequest(eventType, env.Resource)
	default:
		return nil, fmt.Errorf("unsupported azure devops event type %q", eventType)
	}
}

func (n *AzureDevOpsNormalizer) normalizePush(eventType string, resource json.RawMessage) (*Event, error) {
	var res azurePushResource
	if err := json.Unmarshal(resource, &res); err != nil {
		return nil, fmt.Errorf("parse azure devops push resource: %w", err)
	}

	url := res.Repository.RemoteURL
	if url == "" {
		url = res.Repository.WebURL
	}
	if res.Repository.Name == "" || url == "" {
		return nil, errcodes.ErrMissingRepoIdentity
	}

	ev := &Event{
		Kind:      KindPush,
		EventType: eventType,
		Repo: NormalizedRepo{
			Name: res.Repository.Name,
			URL:  url,
		},
	}

	for _, c := range res.Commits {
		if c.CommitID == "" {
			log.Warn().Str("repository", res.Repository.Name).Msg("skipping azure devops commit without hash")
			ev.Skipped++
			continue
		}
		ts := c.Author.Date
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		ev.Commits = append(ev.Commits, NormalizedCommit{
			Hash:         c.CommitID,
			Message:      c.Comment,
			AuthorName:   c.Author.Name,
			AuthorEmail:  c.Author.Email,
			Timestamp:    ts,
			URL:          c.URL,
			FilesChanged: c.ChangeCounts.Add + c.ChangeCounts.Edit + c.ChangeCounts.Delete,
		})
	}

	return ev, nil
}

func (n *AzureDevOpsNormalizer) normalizePullRequest(eventType string, resource json.RawMessage) (*Event, error) {
	var res azurePullRequestResource
	if err := json.Unmarshal(resource, &res); err != nil {
		return nil, fmt.Errorf("parse azure devops pull request resource: %w", err)
	}

	url := res.Repository.RemoteURL
	if url == "" {
		url = res.Repository.WebURL
	}
	if res.Repository.Name == "" || url == "" {
		return nil, errcodes.ErrMissingRepoIdentity
	}
	if res.PullRequestID == 0 {
		return nil, fmt.Errorf("azure devops pull request payload missing pullRequestId: %w", errcodes.ErrMissingItemIdentity)
	}

	createdAt := time.Now().UTC()
	if res.CreationDate != nil {
		createdAt = *res.CreationDate
	}

	description := ""
	if res.Description != nil {
		description = *res.Description
	}

	email := res.CreatedBy.UniqueName
	if email == "" {
		email = "unknown@azure-devops.local"
	}

	ev := &Event{
		Kind:      KindPullRequest,
		EventType: eventType,
		Repo: NormalizedRepo{
			Name: res.Repository.Name,
			URL:  url,
		},
		PullRequest: &NormalizedPullRequest{
			NativeID:    res.PullRequestID,
			Title:       res.Title,
			Description: description,
			Status:      azurePullRequestStatus(res.Status),
			SourceRef:   res.SourceRefName,
			TargetRef:   res.TargetRefName,
			URL:         res.URL,
			CreatedAt:   createdAt,
			AuthorName:  res.CreatedBy.DisplayName,
			AuthorEmail: email,
		},
	}

	return ev, nil
}

// azurePullRequestStatus maps Azure DevOps statuses onto the canonical
// vocabulary. Unknown statuses pass through lower-cased so that the
// terminal-status check still applies to provider additions.
func azurePullRequestStatus(status string) string {
	switch strings.ToLower(status) {
	case "active", "":
		return domain.PullRequestStatusActive
	case "completed":
		return domain.PullRequestStatusCompleted
	case "abandoned":
		return domain.PullRequestStatusAbandoned
	default:
		return strings.ToLower(status)
	}
}
