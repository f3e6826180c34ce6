package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
)

// GormReviewStore is a GORM-based implementation of ReviewStore
type GormReviewStore struct {
	db *gorm.DB
}

// NewGormReviewStore initializes a new GormReviewStore
func NewGormReviewStore(db *gorm.DB) ReviewStore {
	return &GormReviewStore{db: db}
}

func (s *GormReviewStore) Save(ctx context.Context, review domain.Review) (*domain.Review, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	dbReview := toGormReview(&review)
	if err := s.db.WithContext(ctx).Create(dbReview).Error; err != nil {
		return nil, err
	}
	return dbReview.ToDomain(), nil
}

func (s *GormReviewStore) ByPullRequest(ctx context.Context, pullRequestID uint) ([]domain.Review, error) {
	var dbReviews []Review
	err := s.db.WithContext(ctx).
		Where("pull_request_id = ?", pullRequestID).
		Order("created_at asc").
		Find(&dbReviews).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(dbReviews))
	for i := range dbReviews {
		reviews = append(reviews, *dbReviews[i].ToDomain())
	}
	return reviews, nil
}
