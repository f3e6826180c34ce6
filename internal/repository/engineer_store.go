package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// EngineerStore defines an interface for engineer persistence. Email is
// the sole identity key.
type EngineerStore interface {
	ByEmail(ctx context.Context, email string) (*domain.Engineer, error)
	ByID(ctx context.Context, id uint) (*domain.Engineer, error)
	Save(ctx context.Context, engineer domain.Engineer) (*domain.Engineer, error)
}
