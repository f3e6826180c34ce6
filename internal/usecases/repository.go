package usecases

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/http/dtos"
	"github.com/pulseboard/pulseboard/internal/repository"
)

// RepositoryUsecase serves the repository read surface.
type RepositoryUsecase interface {
	GetAll(ctx context.Context) ([]domain.Repository, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Repository, error)
	CommitsByRepository(ctx context.Context, publicID string, query repository.PagingQuery) (*dtos.MultiCommitsResponse, error)
}

type repositoryUsecase struct {
	repos   repository.RepositoryStore
	commits repository.CommitStore
}

// NewRepositoryUsecase creates the repository usecase.
func NewRepositoryUsecase(repos repository.RepositoryStore, commits repository.CommitStore) RepositoryUsecase {
	return &repositoryUsecase{repos: repos, commits: commits}
}

func (u *repositoryUsecase) GetAll(ctx context.Context) ([]domain.Repository, error) {
	return u.repos.All(ctx)
}

func (u *repositoryUsecase) GetByPublicID(ctx context.Context, publicID string) (*domain.Repository, error) {
	return u.repos.ByPublicID(ctx, publicID)
}

func (u *repositoryUsecase) CommitsByRepository(ctx context.Context, publicID string, query repository.PagingQuery) (*dtos.MultiCommitsResponse, error) {
	repo, err := u.repos.ByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	commits, pageInfo, err := u.commits.ByRepository(ctx, repo.ID, query)
	if err != nil {
		return nil, err
	}

	return &dtos.MultiCommitsResponse{
		Commits:  commits,
		PageInfo: pageInfo,
	}, nil
}
