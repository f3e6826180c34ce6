package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// PullRequestStore defines an interface for pull request persistence.
type PullRequestStore interface {
	ByRepoAndNativeID(ctx context.Context, repositoryID uint, nativeID int64) (*domain.PullRequest, error)
	ByID(ctx context.Context, id uint) (*domain.PullRequest, error)
	// Save inserts a pull request. A concurrent insert of the same
	// (repository, native id) pair returns errcodes.ErrAlreadyExists.
	Save(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error)
	Update(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error)
}
