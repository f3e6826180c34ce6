package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// CommitStore defines an interface for commit persistence.
type CommitStore interface {
	ByRepoAndHash(ctx context.Context, repositoryID uint, hash string) (*domain.Commit, error)
	// Save inserts a commit. A concurrent insert of the same
	// (repository, hash) pair returns errcodes.ErrAlreadyExists, which
	// callers treat as a successful skip.
	Save(ctx context.Context, commit domain.Commit) (*domain.Commit, error)
	ByRepository(ctx context.Context, repositoryID uint, paging PagingQuery) ([]domain.Commit, PagingInfo, error)
}
