package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// RepositoryStore defines an interface for repository persistence.
type RepositoryStore interface {
	// ByNameOrURL matches an existing repository by name OR url. This
	// tolerance absorbs provider-identity drift across deliveries.
	ByNameOrURL(ctx context.Context, name, url string) (*domain.Repository, error)
	ByPublicID(ctx context.Context, publicID string) (*domain.Repository, error)
	Save(ctx context.Context, repo domain.Repository) (*domain.Repository, error)
	All(ctx context.Context) ([]domain.Repository, error)
	SetActive(ctx context.Context, id uint, active bool) error
}
