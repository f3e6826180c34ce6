package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPullRequestStore is a GORM-based implementation of PullRequestStore
type GormPullRequestStore struct {
	db *gorm.DB
}

// NewGormPullRequestStore initializes a new GormPullRequestStore
func NewGormPullRequestStore(db *gorm.DB) PullRequestStore {
	return &GormPullRequestStore{db: db}
}

func (s *GormPullRequestStore) ByRepoAndNativeID(ctx context.Context, repositoryID uint, nativeID int64) (*domain.PullRequest, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var pr PullRequest
	err := s.db.WithContext(ctx).
		Where("repository_id = ? AND native_id = ?", repositoryID, nativeID).
		Find(&pr).Error
	if err != nil {
		return nil, err
	}
	if pr.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return pr.ToDomain(), nil
}

func (s *GormPullRequestStore) ByID(ctx context.Context, id uint) (*domain.PullRequest, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var pr PullRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).Find(&pr).Error
	if err != nil {
		return nil, err
	}
	if pr.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return pr.ToDomain(), nil
}

// Save inserts a pull request. The (repository_id, native_id)
// constraint turns a racing duplicate insert into ErrAlreadyExists so
// the caller can fall back to an update.
func (s *GormPullRequestStore) Save(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error) {
	dbPR := toGormPullRequest(&pr)

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repository_id"}, {Name: "native_id"}},
		DoNothing: true,
	}).Create(dbPR)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, errcodes.ErrAlreadyExists
	}
	return dbPR.ToDomain(), nil
}

func (s *GormPullRequestStore) Update(ctx context.Context, pr domain.PullRequest) (*domain.PullRequest, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	dbPR := toGormPullRequest(&pr)

	err := s.db.WithContext(ctx).Model(&PullRequest{}).
		Where("id = ?", pr.ID).
		Select("Title", "Description", "Status", "SourceRef", "TargetRef", "URL", "ClosedAt", "EngineerID").
		Updates(dbPR).Error
	if err != nil {
		return nil, err
	}
	return dbPR.ToDomain(), nil
}
