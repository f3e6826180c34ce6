package repository

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEngineerStore is a GORM-based implementation of EngineerStore
type GormEngineerStore struct {
	db *gorm.DB
}

// NewGormEngineerStore initializes a new GormEngineerStore
func NewGormEngineerStore(db *gorm.DB) EngineerStore {
	return &GormEngineerStore{db: db}
}

func (s *GormEngineerStore) ByEmail(ctx context.Context, email string) (*domain.Engineer, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var engineer Engineer
	err := s.db.WithContext(ctx).Where("email = ?", email).Find(&engineer).Error
	if err != nil {
		return nil, err
	}
	if engineer.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return engineer.ToDomain(), nil
}

func (s *GormEngineerStore) ByID(ctx context.Context, id uint) (*domain.Engineer, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var engineer Engineer
	err := s.db.WithContext(ctx).Where("id = ?", id).Find(&engineer).Error
	if err != nil {
		return nil, err
	}
	if engineer.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return engineer.ToDomain(), nil
}

// Save inserts an engineer. The unique email constraint makes racing
// inserts of the same email surface as ErrAlreadyExists; the existing
// row keeps its first-seen display name.
func (s *GormEngineerStore) Save(ctx context.Context, engineer domain.Engineer) (*domain.Engineer, error) {
	dbEngineer := toGormEngineer(&engineer)

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(dbEngineer)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, errcodes.ErrAlreadyExists
	}
	return dbEngineer.ToDomain(), nil
}
