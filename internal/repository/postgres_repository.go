package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepositoryStore is a GORM-based implementation of RepositoryStore
type GormRepositoryStore struct {
	db *gorm.DB
}

// NewGormRepositoryStore initializes a new GormRepositoryStore
func NewGormRepositoryStore(db *gorm.DB) RepositoryStore {
	return &GormRepositoryStore{db: db}
}

func (r *GormRepositoryStore) ByNameOrURL(ctx context.Context, name, url string) (*domain.Repository, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var repo Repository
	err := r.db.WithContext(ctx).
		Where("name = ? OR url = ?", name, url).
		Limit(1).
		Find(&repo).Error
	if err != nil {
		return nil, err
	}
	if repo.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return repo.ToDomain(), nil
}

func (r *GormRepositoryStore) ByPublicID(ctx context.Context, publicID string) (*domain.Repository, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var repo Repository
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).Find(&repo).Error
	if err != nil {
		return nil, err
	}
	if repo.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return repo.ToDomain(), nil
}

// Save inserts a repository. The (project_id, name) constraint is the
// concurrency control: a racing duplicate insert surfaces as
// ErrAlreadyExists and callers re-read instead of failing.
func (r *GormRepositoryStore) Save(ctx context.Context, repo domain.Repository) (*domain.Repository, error) {
	dbRepo := toGormRepository(&repo)

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(dbRepo)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, errcodes.ErrAlreadyExists
	}
	return dbRepo.ToDomain(), nil
}

func (r *GormRepositoryStore) All(ctx context.Context) ([]domain.Repository, error) {
	var dbRepos []Repository
	if err := r.db.WithContext(ctx).Order("name asc").Find(&dbRepos).Error; err != nil {
		return nil, err
	}

	repos := make([]domain.Repository, 0, len(dbRepos))
	for i := range dbRepos {
		repos = append(repos, *dbRepos[i].ToDomain())
	}
	return repos, nil
}

func (r *GormRepositoryStore) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).Model(&Repository{}).
		Where("id = ?", id).
		Update("active", active).Error
}
