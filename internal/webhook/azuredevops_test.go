package webhook

import (
	"testing"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureNormalizePush(t *testing.T) {
	payload := []byte(`{
		"eventType": "git.push",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"refUpdates": [{"name": "refs/heads/main"}],
			"commits": [
				{
					"commitId": "deadbeef",
					"comment": "refactor storage",
					"url": "https://dev.azure.com/org/_git/backend/commit/deadbeef",
					"author": {"name": "Ivan", "email": "ivan@corp.com", "date": "2025-04-02T08:30:00Z"},
					"changeCounts": {"Add": 2, "Edit": 3, "Delete": 1}
				}
			]
		}
	}`)

	// event type resolved from the envelope
	ev, err := NewAzureDevOpsNormalizer().Normalize("", payload)

	require.NoError(t, err)
	assert.Equal(t, KindPush, ev.Kind)
	assert.Equal(t, "git.push", ev.EventType)
	assert.Equal(t, "backend", ev.Repo.Name)
	require.Len(t, ev.Commits, 1)
	c := ev.Commits[0]
	assert.Equal(t, "deadbeef", c.Hash)
	assert.Equal(t, "refactor storage", c.Message)
	assert.Equal(t, "ivan@corp.com", c.AuthorEmail)
	assert.Equal(t, 6, c.FilesChanged)
}

func TestAzureNormalizePushSkipsCommitWithoutHash(t *testing.T) {
	payload := []byte(`{
		"eventType": "git.push",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"commits": [
				{"commitId": "", "comment": "bad"},
				{"commitId": "cafe01", "comment": "good", "author": {"name": "A", "email": "a@corp.com"}}
			]
		}
	}`)

	ev, err := NewAzureDevOpsNormalizer().Normalize("", payload)

	require.NoError(t, err)
	assert.Len(t, ev.Commits, 1)
	assert.Equal(t, 1, ev.Skipped)
}

func TestAzureNormalizePullRequestCreated(t *testing.T) {
	payload := []byte(`{
		"eventType": "git.pullrequest.created",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"pullRequestId": 7,
			"title": "Speed up queries",
			"description": "uses an index",
			"status": "active",
			"sourceRefName": "refs/heads/perf",
			"targetRefName": "refs/heads/main",
			"url": "https://dev.azure.com/org/_git/backend/pullrequest/7",
			"creationDate": "2025-04-02T09:00:00Z",
			"createdBy": {"displayName": "Ivan Petrov", "uniqueName": "ivan@corp.com"}
		}
	}`)

	ev, err := NewAzureDevOpsNormalizer().Normalize("", payload)

	require.NoError(t, err)
	require.NotNil(t, ev.PullRequest)
	pr := ev.PullRequest
	assert.Equal(t, int64(7), pr.NativeID)
	assert.Equal(t, domain.PullRequestStatusActive, pr.Status)
	assert.Equal(t, "refs/heads/perf", pr.SourceRef)
	assert.Equal(t, "Ivan Petrov", pr.AuthorName)
	assert.Equal(t, "ivan@corp.com", pr.AuthorEmail)
}

func TestAzureNormalizePullRequestCompleted(t *testing.T) {
	payload := []byte(`{
		"eventType": "git.pullrequest.updated",
		"resource": {
			"repository": {"name": "backend", "remoteUrl": "https://dev.azure.com/org/_git/backend"},
			"pullRequestId": 7,
			"title": "Speed up queries",
			"status": "Completed",
			"createdBy": {"displayName": "Ivan Petrov", "uniqueName": "ivan@corp.com"}
		}
	}`)

	ev, err := NewAzureDevOpsNormalizer().Normalize("", payload)

	require.NoError(t, err)
	assert.Equal(t, domain.PullRequestStatusCompleted, ev.PullRequest.Status)
	assert.True(t, domain.IsTerminalStatus(ev.PullRequest.Status))
}

func TestAzureNormalizeMissingRepoIdentity(t *testing.T) {
	payload := []byte(`{
		"eventType": "git.push",
		"resource": {"repository": {"name": ""}, "commits": []}
	}`)

	_, err := NewAzureDevOpsNormalizer().Normalize("", payload)

	assert.ErrorIs(t, err, errcodes.ErrMissingRepoIdentity)
}

func TestAzureNormalizeMissingResource(t *testing.T) {
	_, err := NewAzureDevOpsNormalizer().Normalize("", []byte(`{"eventType": "git.push"}`))
	assert.ErrorIs(t, err, errcodes.ErrMissingRepoIdentity)
}

func TestAzureNormalizeUnsupportedEvent(t *testing.T) {
	_, err := NewAzureDevOpsNormalizer().Normalize("", []byte(`{"eventType": "workitem.updated", "resource": {}}`))
	assert.Error(t, err)
}
