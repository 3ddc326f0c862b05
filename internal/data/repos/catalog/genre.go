package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type GenreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, genres []*types.Genre) ([]*types.Genre, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Genre, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Genre, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	return &genreRepo{db: db, log: baseLog.With("repo", "GenreRepo")}
}

func (gr *genreRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return gr.db
}

func (gr *genreRepo) Create(ctx context.Context, tx *gorm.DB, genres []*types.Genre) ([]*types.Genre, error) {
	if len(genres) == 0 {
		return []*types.Genre{}, nil
	}
	if err := gr.conn(tx).WithContext(ctx).Create(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (gr *genreRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Genre, error) {
	var genres []*types.Genre
	if len(ids) == 0 {
		return genres, nil
	}
	if err := gr.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (gr *genreRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Genre, error) {
	var genres []*types.Genre
	if err := gr.conn(tx).WithContext(ctx).
		Order("name ASC").
		Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
