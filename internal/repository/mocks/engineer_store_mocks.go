package mocks

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/stretchr/testify/mock"
)

// EngineerStore mock
type EngineerStore struct {
	mock.Mock
}

func (m *EngineerStore) ByEmail(ctx context.Context, email string) (*domain.Engineer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engineer), args.Error(1)
}

func (m *EngineerStore) ByID(ctx context.Context, id uint) (*domain.Engineer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engineer), args.Error(1)
}

func (m *EngineerStore) Save(ctx context.Context, engineer domain.Engineer) (*domain.Engineer, error) {
	args := m.Called(ctx, engineer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engineer), args.Error(1)
}
