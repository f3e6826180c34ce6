package repository

import (
	"context"
	"fmt"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommitStore is a GORM-based implementation of CommitStore
type GormCommitStore struct {
	db *gorm.DB
}

// NewGormCommitStore initializes a new GormCommitStore
func NewGormCommitStore(db *gorm.DB) CommitStore {
	return &GormCommitStore{db: db}
}

func (s *GormCommitStore) ByRepoAndHash(ctx context.Context, repositoryID uint, hash string) (*domain.Commit, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var commit Commit
	err := s.db.WithContext(ctx).
		Where("repository_id = ? AND commit_hash = ?", repositoryID, hash).
		Find(&commit).Error
	if err != nil {
		return nil, err
	}
	if commit.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return commit.ToDomain(), nil
}

// Save inserts a commit. Commit content is immutable once recorded, so
// a conflicting insert does nothing and reports ErrAlreadyExists.
func (s *GormCommitStore) Save(ctx context.Context, commit domain.Commit) (*domain.Commit, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	dbCommit := toGormCommit(&commit)

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repository_id"}, {Name: "commit_hash"}},
		DoNothing: true,
	}).Create(dbCommit)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, errcodes.ErrAlreadyExists
	}
	return dbCommit.ToDomain(), nil
}

// commit sort columns allowed from the HTTP layer.
var commitSortColumns = map[string]struct{}{
	"created_at": {},
	"date":       {},
}

func (s *GormCommitStore) ByRepository(ctx context.Context, repositoryID uint, query PagingQuery) ([]domain.Commit, PagingInfo, error) {
	query, offset := getPaginationInfo(query)
	if _, ok := commitSortColumns[query.Sort]; !ok {
		query.Sort = DefaultSortBy
	}

	db := s.db.WithContext(ctx).Model(&Commit{}).Where("repository_id = ?", repositoryID)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, PagingInfo{}, err
	}

	var dbCommits []Commit
	err := db.Offset(offset).Limit(query.Limit).
		Order(fmt.Sprintf("%s %s", query.Sort, query.Direction)).
		Find(&dbCommits).Error
	if err != nil {
		log.Error().Err(err).Uint("repository_id", repositoryID).Msg("fetch commits failed")
		return nil, PagingInfo{}, err
	}

	commits := make([]domain.Commit, 0, len(dbCommits))
	for i := range dbCommits {
		commits = append(commits, *dbCommits[i].ToDomain())
	}

	info := getPagingInfo(query, count)
	info.Count = len(commits)
	return commits, info, nil
}
