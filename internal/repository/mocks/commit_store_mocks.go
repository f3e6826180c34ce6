package mocks

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/stretchr/testify/mock"
)

// CommitStore mock
type CommitStore struct {
	mock.Mock
}

func (m *CommitStore) ByRepoAndHash(ctx context.Context, repositoryID uint, hash string) (*domain.Commit, error) {
	args := m.Called(ctx, repositoryID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commit), args.Error(1)
}

func (m *CommitStore) Save(ctx context.Context, commit domain.Commit) (*domain.Commit, error) {
	args := m.Called(ctx, commit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commit), args.Error(1)
}

func (m *CommitStore) ByRepository(ctx context.Context, repositoryID uint, paging repository.PagingQuery) ([]domain.Commit, repository.PagingInfo, error) {
	args := m.Called(ctx, repositoryID, paging)
	if args.Get(0) == nil {
		return nil, args.Get(1).(repository.PagingInfo), args.Error(2)
	}
	return args.Get(0).([]domain.Commit), args.Get(1).(repository.PagingInfo), args.Error(2)
}
