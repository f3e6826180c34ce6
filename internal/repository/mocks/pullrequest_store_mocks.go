package mocks

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/stretchr/testify/mock"
)

// PullRequestStore mock
type PullRequestStore struct {
	mock.Mock
}

func (m *PullRequestStore) ByRepoAndNativeID(ctx context.Context, repositoryID uint, nativeID int64) (*domain.PullRequest, error) {
	args := m.Called(ctx, repositoryID, nativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

func (m *PullRequestStore) ByID(ctx context.Context, id uint) (*domain.PullRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

func (m *PullRequestStore) Save(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error) {
	args := m.Called(ctx, pr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

func (m *PullRequestStore) Update(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error) {
	args := m.Called(ctx, pr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}
