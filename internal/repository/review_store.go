package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// ReviewStore defines an interface for review persistence.
type ReviewStore interface {
	Save(ctx context.Context, review domain.Review) (*domain.Review, error)
	ByPullRequest(ctx context.Context, pullRequestID uint) ([]domain.Review, error)
}
