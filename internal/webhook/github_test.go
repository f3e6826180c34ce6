package webhook

import (
	"testing"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubNormalizePush(t *testing.T) {
	payload := []byte(`{
		"ref": "refs/heads/main",
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"commits": [
			{
				"id": "abc123",
				"message": "fix bug",
				"timestamp": "2025-03-01T10:00:00Z",
				"url": "https://github.com/org/demo/commit/abc123",
				"author": {"name": "Jane", "email": "jane@x.com"},
				"added": ["a.go"],
				"modified": ["b.go", "c.go"]
			}
		]
	}`)

	ev, err := NewGitHubNormalizer().Normalize("push", payload)

	require.NoError(t, err)
	assert.Equal(t, KindPush, ev.Kind)
	assert.Equal(t, "demo", ev.Repo.Name)
	assert.Equal(t, "https://github.com/org/demo", ev.Repo.URL)
	require.Len(t, ev.Commits, 1)
	c := ev.Commits[0]
	assert.Equal(t, "abc123", c.Hash)
	assert.Equal(t, "fix bug", c.Message)
	assert.Equal(t, "Jane", c.AuthorName)
	assert.Equal(t, "jane@x.com", c.AuthorEmail)
	assert.Equal(t, 3, c.FilesChanged)
	assert.Zero(t, c.Additions)
	assert.Zero(t, c.Deletions)
}

func TestGitHubNormalizePushSkipsCommitWithoutHash(t *testing.T) {
	payload := []byte(`{
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"commits": [
			{"id": "aaa", "message": "one", "author": {"name": "A", "email": "a@x.com"}},
			{"id": "", "message": "bad", "author": {"name": "B", "email": "b@x.com"}},
			{"id": "ccc", "message": "three", "author": {"name": "C", "email": "c@x.com"}}
		]
	}`)

	ev, err := NewGitHubNormalizer().Normalize("push", payload)

	require.NoError(t, err)
	assert.Len(t, ev.Commits, 2)
	assert.Equal(t, 1, ev.Skipped)
	assert.Equal(t, "aaa", ev.Commits[0].Hash)
	assert.Equal(t, "ccc", ev.Commits[1].Hash)
}

func TestGitHubNormalizePushMissingRepoIdentity(t *testing.T) {
	payload := []byte(`{"repository": {"name": "demo"}, "commits": []}`)

	_, err := NewGitHubNormalizer().Normalize("push", payload)

	assert.ErrorIs(t, err, errcodes.ErrMissingRepoIdentity)
}

func TestGitHubNormalizePushBadJSON(t *testing.T) {
	_, err := NewGitHubNormalizer().Normalize("push", []byte(`{not json`))
	assert.Error(t, err)
}

func TestGitHubNormalizePullRequest(t *testing.T) {
	payload := []byte(`{
		"action": "opened",
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"pull_request": {
			"number": 42,
			"title": "Add feature",
			"body": "adds the feature",
			"state": "open",
			"html_url": "https://github.com/org/demo/pull/42",
			"created_at": "2025-03-01T09:00:00Z",
			"head": {"ref": "feature/x"},
			"base": {"ref": "main"},
			"user": {"login": "Jane"}
		}
	}`)

	ev, err := NewGitHubNormalizer().Normalize("pull_request", payload)

	require.NoError(t, err)
	assert.Equal(t, KindPullRequest, ev.Kind)
	require.NotNil(t, ev.PullRequest)
	pr := ev.PullRequest
	assert.Equal(t, int64(42), pr.NativeID)
	assert.Equal(t, "Add feature", pr.Title)
	assert.Equal(t, "adds the feature", pr.Description)
	assert.Equal(t, domain.PullRequestStatusActive, pr.Status)
	assert.Equal(t, "feature/x", pr.SourceRef)
	assert.Equal(t, "main", pr.TargetRef)
	assert.Equal(t, "Jane", pr.AuthorName)
	assert.Equal(t, "jane@users.noreply.github.com", pr.AuthorEmail)
}

func TestGitHubNormalizePullRequestStatusMapping(t *testing.T) {
	tests := []struct {
		state  string
		merged bool
		want   string
	}{
		{"open", false, domain.PullRequestStatusActive},
		{"closed", true, domain.PullRequestStatusCompleted},
		{"closed", false, domain.PullRequestStatusAbandoned},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, githubPullRequestStatus(tt.state, tt.merged))
	}
}

func TestGitHubNormalizePullRequestMissingNumber(t *testing.T) {
	payload := []byte(`{
		"repository": {"name": "demo", "html_url": "https://github.com/org/demo"},
		"pull_request": {"title": "no number"}
	}`)

	_, err := NewGitHubNormalizer().Normalize("pull_request", payload)

	assert.ErrorIs(t, err, errcodes.ErrMissingItemIdentity)
}

func TestGitHubNormalizeUnsupportedEvent(t *testing.T) {
	_, err := NewGitHubNormalizer().Normalize("issues", []byte(`{}`))
	assert.Error(t, err)
}
