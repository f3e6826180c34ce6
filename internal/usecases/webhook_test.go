package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/repository/mocks"
	"github.com/pulseboard/pulseboard/internal/webhook"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published notifications per group.
type recordingPublisher struct {
	mu      sync.Mutex
	byGroup map[string][]domain.Notification
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{byGroup: make(map[string][]domain.Notification)}
}

func (p *recordingPublisher) Publish(group string, n domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byGroup[group] = append(p.byGroup[group], n)
}

type webhookMocks struct {
	events    *mocks.WebhookEventStore
	repos     *mocks.RepositoryStore
	engineers *mocks.EngineerStore
	commits   *mocks.CommitStore
	pulls     *mocks.PullRequestStore
	publisher *recordingPublisher
}

func newWebhookUsecase(t *testing.T) (WebhookUsecase, *webhookMocks) {
	t.Helper()

	m := &webhookMocks{
		events:    new(mocks.WebhookEventStore),
		repos:     new(mocks.RepositoryStore),
		engineers: new(mocks.EngineerStore),
		commits:   new(mocks.CommitStore),
		pulls:     new(mocks.PullRequestStore),
		publisher: newRecordingPublisher(),
	}

	uc := NewWebhookUsecase(
		m.events, m.repos, m.engineers, m.commits, m.pulls,
		m.publisher, time.Second,
		webhook.NewGitHubNormalizer(), webhook.NewAzureDevOpsNormalizer(),
	)
	return uc, m
}

func (m *webhookMocks) expectAudit() {
	m.events.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.WebhookEvent{ID: 1}, nil)
	m.events.On("MarkResult", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return(nil)
}

const githubPushPayload = `{
	"ref": "refs/heads/main",
	"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
	"commits": [
		{
			"id": "abc123",
			"message": "fix bug",
			"timestamp": "2025-03-01T10:00:00Z",
			"author": {"name": "Jane", "email": "jane@x.com"}
		}
	]
}`

func TestIngestGitHubPushCreatesEverything(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	repo := &domain.Repository{ID: 5, Name: "demo", URL: "https://github.com/org/demo", Active: true}
	jane := &domain.Engineer{ID: 9, Email: "jane@x.com", Name: "Jane"}

	m.repos.On("ByNameOrURL", mock.Anything, "demo", "https://github.com/org/demo").
		Return(nil, errcodes.ErrNoRecordFound).Once()
	m.repos.On("Save", mock.Anything, mock.MatchedBy(func(r domain.Repository) bool {
		return r.Name == "demo" && r.ProjectID == "default" && r.Active
	})).Return(repo, nil)

	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), "abc123").
		Return(nil, errcodes.ErrNoRecordFound)
	m.engineers.On("ByEmail", mock.Anything, "jane@x.com").
		Return(nil, errcodes.ErrNoRecordFound).Once()
	m.engineers.On("Save", mock.Anything, mock.MatchedBy(func(e domain.Engineer) bool {
		return e.Email == "jane@x.com" && e.Name == "Jane"
	})).Return(jane, nil)
	m.commits.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Commit) bool {
		return c.CommitHash == "abc123" && c.RepositoryID == 5 &&
			c.Message == "fix bug" && c.EngineerID != nil && *c.EngineerID == 9
	})).Return(&domain.Commit{ID: 1}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", []byte(githubPushPayload))

	assert.True(t, ok)
	m.repos.AssertExpectations(t)
	m.engineers.AssertExpectations(t)
	m.commits.AssertExpectations(t)
	m.events.AssertExpectations(t)

	assert.Len(t, m.publisher.byGroup["All"], 1)
	assert.Len(t, m.publisher.byGroup["Repository_5"], 1)
	assert.Len(t, m.publisher.byGroup["WebhookEvent_push"], 1)
}

func TestIngestDuplicateCommitIsSkipped(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	repo := &domain.Repository{ID: 5, Name: "demo", URL: "https://github.com/org/demo"}
	m.repos.On("ByNameOrURL", mock.Anything, "demo", "https://github.com/org/demo").
		Return(repo, nil)

	// the commit already exists: no engineer resolution, no save
	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), "abc123").
		Return(&domain.Commit{ID: 3, CommitHash: "abc123", Message: "original"}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", []byte(githubPushPayload))

	assert.True(t, ok)
	m.commits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.engineers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngestPartialBatchTolerance(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	payload := []byte(`{
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"commits": [
			{"id": "aaa", "author": {"name": "A", "email": "a@x.com"}},
			{"id": "", "author": {"name": "B", "email": "b@x.com"}},
			{"id": "ccc", "author": {"name": "C", "email": "c@x.com"}}
		]
	}`)

	repo := &domain.Repository{ID: 5, Name: "demo"}
	m.repos.On("ByNameOrURL", mock.Anything, mock.Anything, mock.Anything).Return(repo, nil)
	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), mock.Anything).
		Return(nil, errcodes.ErrNoRecordFound)
	m.engineers.On("ByEmail", mock.Anything, mock.Anything).
		Return(&domain.Engineer{ID: 1}, nil)
	m.commits.On("Save", mock.Anything, mock.Anything).Return(&domain.Commit{}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", payload)

	assert.True(t, ok)
	m.commits.AssertNumberOfCalls(t, "Save", 2)
}

func TestIngestEngineerIdentityByEmail(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	// second delivery with a different author-name casing for a known email
	payload := []byte(`{
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"commits": [
			{"id": "ddd", "author": {"name": "JANE DOE", "email": "jane@x.com"}}
		]
	}`)

	repo := &domain.Repository{ID: 5, Name: "demo"}
	jane := &domain.Engineer{ID: 9, Email: "jane@x.com", Name: "Jane"}

	m.repos.On("ByNameOrURL", mock.Anything, mock.Anything, mock.Anything).Return(repo, nil)
	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), "ddd").
		Return(nil, errcodes.ErrNoRecordFound)
	m.engineers.On("ByEmail", mock.Anything, "jane@x.com").Return(jane, nil)
	m.commits.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Commit) bool {
		return c.EngineerID != nil && *c.EngineerID == 9
	})).Return(&domain.Commit{}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", payload)

	assert.True(t, ok)
	// lookup hit: the stored name is never overwritten
	m.engineers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngestMalformedEnvelopeFails(t *testing.T) {
	uc, m := newWebhookUsecase(t)

	m.events.On("Record", mock.Anything, "github", "push", mock.Anything).
		Return(&domain.WebhookEvent{ID: 7}, nil)
	m.events.On("MarkResult", mock.Anything, uint(7), false, mock.MatchedBy(func(s string) bool {
		return s != ""
	})).Return(nil)

	payload := []byte(`{"repository": {"name": ""}, "commits": []}`)
	ok := uc.Ingest(context.Background(), "github", "push", payload)

	assert.False(t, ok)
	m.events.AssertExpectations(t)
	m.repos.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngestUnknownProviderFails(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	ok := uc.Ingest(context.Background(), "bitbucket", "push", []byte(`{}`))

	assert.False(t, ok)
}

func TestIngestAuditFailureIsSwallowed(t *testing.T) {
	uc, m := newWebhookUsecase(t)

	m.events.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	repo := &domain.Repository{ID: 5, Name: "demo"}
	m.repos.On("ByNameOrURL", mock.Anything, mock.Anything, mock.Anything).Return(repo, nil)
	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), "abc123").
		Return(&domain.Commit{ID: 1}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", []byte(githubPushPayload))

	// ingestion proceeds even though the audit write failed
	assert.True(t, ok)
	m.events.AssertNotCalled(t, "MarkResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

const azurePRCreatedPayload = `{
	"eventType": "git.pullrequest.created",
	"resource": {
		"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
		"pullRequestId": 7,
		"title": "Speed up queries",
		"status": "active",
		"sourceRefName": "refs/heads/perf",
		"targetRefName": "refs/heads/main",
		"creationDate": "2025-04-02T09:00:00Z",
		"createdBy": {"displayName": "Ivan Petrov", "uniqueName": "ivan@corp.com"}
	}
}`

func TestIngestPullRequestCreated(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	repo := &domain.Repository{ID: 2, Name: "backend"}
	ivan := &domain.Engineer{ID: 4, Email: "ivan@corp.com"}

	m.repos.On("ByNameOrURL", mock.Anything, "backend", mock.Anything).Return(repo, nil)
	m.pulls.On("ByRepoAndNativeID", mock.Anything, uint(2), int64(7)).
		Return(nil, errcodes.ErrNoRecordFound)
	m.engineers.On("ByEmail", mock.Anything, "ivan@corp.com").Return(ivan, nil)
	m.pulls.On("Save", mock.Anything, mock.MatchedBy(func(pr domain.PullRequest) bool {
		return pr.NativeID == 7 && pr.RepositoryID == 2 &&
			pr.Status == domain.PullRequestStatusActive && pr.ClosedAt == nil &&
			pr.OpenedAt.Equal(time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC))
	})).Return(&domain.PullRequest{ID: 11, NativeID: 7, RepositoryID: 2, Status: domain.PullRequestStatusActive}, nil)

	ok := uc.Ingest(context.Background(), "azure-devops", "", []byte(azurePRCreatedPayload))

	assert.True(t, ok)
	m.pulls.AssertExpectations(t)
	assert.Len(t, m.publisher.byGroup["Repository_2"], 1)
	assert.Len(t, m.publisher.byGroup["WebhookEvent_git.pullrequest.created"], 1)
}

func TestIngestPullRequestUpdateMutatesExistingRow(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	payload := []byte(`{
		"eventType": "git.pullrequest.updated",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"pullRequestId": 7,
			"title": "Speed up queries (v2)",
			"status": "Completed",
			"createdBy": {"displayName": "Ivan Petrov", "uniqueName": "ivan@corp.com"}
		}
	}`)

	repo := &domain.Repository{ID: 2, Name: "backend"}
	existing := &domain.PullRequest{
		ID: 11, NativeID: 7, RepositoryID: 2,
		Title: "Speed up queries", Status: domain.PullRequestStatusActive,
	}

	m.repos.On("ByNameOrURL", mock.Anything, "backend", mock.Anything).Return(repo, nil)
	m.pulls.On("ByRepoAndNativeID", mock.Anything, uint(2), int64(7)).Return(existing, nil)
	m.pulls.On("Update", mock.Anything, mock.MatchedBy(func(pr domain.PullRequest) bool {
		return pr.ID == 11 && pr.Title == "Speed up queries (v2)" &&
			pr.Status == domain.PullRequestStatusCompleted && pr.ClosedAt != nil
	})).Return(existing, nil)

	ok := uc.Ingest(context.Background(), "azure-devops", "", payload)

	assert.True(t, ok)
	m.pulls.AssertExpectations(t)
	m.pulls.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngestTerminalStatusIsOneWay(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	// PR re-activated after being closed: ClosedAt must survive
	payload := []byte(`{
		"eventType": "git.pullrequest.updated",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"pullRequestId": 7,
			"title": "Speed up queries",
			"status": "active",
			"createdBy": {"displayName": "Ivan Petrov", "uniqueName": "ivan@corp.com"}
		}
	}`)

	closed := time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC)
	repo := &domain.Repository{ID: 2, Name: "backend"}
	existing := &domain.PullRequest{
		ID: 11, NativeID: 7, RepositoryID: 2,
		Status: domain.PullRequestStatusCompleted, ClosedAt: &closed,
	}

	m.repos.On("ByNameOrURL", mock.Anything, "backend", mock.Anything).Return(repo, nil)
	m.pulls.On("ByRepoAndNativeID", mock.Anything, uint(2), int64(7)).Return(existing, nil)
	m.pulls.On("Update", mock.Anything, mock.MatchedBy(func(pr domain.PullRequest) bool {
		return pr.Status == domain.PullRequestStatusActive &&
			pr.ClosedAt != nil && pr.ClosedAt.Equal(closed)
	})).Return(existing, nil)

	ok := uc.Ingest(context.Background(), "azure-devops", "", payload)

	assert.True(t, ok)
	m.pulls.AssertExpectations(t)
}

func TestIngestRacingPullRequestInsertFallsBackToUpdate(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	repo := &domain.Repository{ID: 2, Name: "backend"}
	existing := &domain.PullRequest{ID: 11, NativeID: 7, RepositoryID: 2}

	m.repos.On("ByNameOrURL", mock.Anything, "backend", mock.Anything).Return(repo, nil)
	m.engineers.On("ByEmail", mock.Anything, mock.Anything).Return(&domain.Engineer{ID: 4}, nil)
	m.pulls.On("ByRepoAndNativeID", mock.Anything, uint(2), int64(7)).
		Return(nil, errcodes.ErrNoRecordFound).Once()
	m.pulls.On("Save", mock.Anything, mock.Anything).
		Return(nil, errcodes.ErrAlreadyExists)
	m.pulls.On("ByRepoAndNativeID", mock.Anything, uint(2), int64(7)).
		Return(existing, nil).Once()
	m.pulls.On("Update", mock.Anything, mock.Anything).Return(existing, nil)

	ok := uc.Ingest(context.Background(), "azure-devops", "", []byte(azurePRCreatedPayload))

	assert.True(t, ok)
	m.pulls.AssertExpectations(t)
}

func TestRecordRejected(t *testing.T) {
	uc, m := newWebhookUsecase(t)

	m.events.On("Record", mock.Anything, "github", "push", mock.Anything).
		Return(&domain.WebhookEvent{ID: 3}, nil)
	m.events.On("MarkResult", mock.Anything, uint(3), false, "signature mismatch").
		Return(nil)

	uc.RecordRejected(context.Background(), "github", "push", []byte(`{}`), "signature mismatch")

	m.events.AssertExpectations(t)
}

func TestIngestRepositoryORMatch(t *testing.T) {
	uc, m := newWebhookUsecase(t)
	m.expectAudit()

	// payload url differs from the stored one; name matches
	repo := &domain.Repository{ID: 5, Name: "demo", URL: "https://old.example.com/demo"}
	m.repos.On("ByNameOrURL", mock.Anything, "demo", "https://github.com/org/demo").
		Return(repo, nil)
	m.commits.On("ByRepoAndHash", mock.Anything, uint(5), "abc123").
		Return(&domain.Commit{ID: 1}, nil)

	ok := uc.Ingest(context.Background(), "github", "push", []byte(githubPushPayload))

	require.True(t, ok)
	m.repos.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
