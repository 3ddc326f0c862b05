package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type DvdRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dvds []*types.Dvd) ([]*types.Dvd, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Dvd, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Dvd, error)
	UpdateDetails(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// DecreaseAvailable subtracts count from copies_available and refreshes
	// the availability flag in one guarded UPDATE. The WHERE clause carries
	// the "enough copies" precondition so the check and the write cannot be
	// interleaved by a concurrent caller; zero rows affected means the guard
	// failed (missing row or insufficient copies).
	DecreaseAvailable(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) (int64, error)

	// IncreaseAvailable adds count back and refreshes the flag. No upper
	// bound is enforced here; the lifecycles guarantee releases match holds.
	IncreaseAvailable(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) (int64, error)
}

type dvdRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDvdRepo(db *gorm.DB, baseLog *logger.Logger) DvdRepo {
	return &dvdRepo{db: db, log: baseLog.With("repo", "DvdRepo")}
}

func (dr *dvdRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return dr.db
}

func (dr *dvdRepo) Create(ctx context.Context, tx *gorm.DB, dvds []*types.Dvd) ([]*types.Dvd, error) {
	if len(dvds) == 0 {
		return []*types.Dvd{}, nil
	}
	if err := dr.conn(tx).WithContext(ctx).Create(&dvds).Error; err != nil {
		return nil, err
	}
	return dvds, nil
}

func (dr *dvdRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Dvd, error) {
	var dvd types.Dvd
	if err := dr.conn(tx).WithContext(ctx).
		Preload("Genres").
		First(&dvd, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dvd, nil
}

func (dr *dvdRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Dvd, error) {
	var dvds []*types.Dvd
	if err := dr.conn(tx).WithContext(ctx).
		Preload("Genres").
		Order("added_at DESC").
		Find(&dvds).Error; err != nil {
		return nil, err
	}
	return dvds, nil
}

func (dr *dvdRepo) UpdateDetails(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return dr.conn(tx).WithContext(ctx).
		Model(&types.Dvd{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (dr *dvdRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return dr.conn(tx).WithContext(ctx).
		Delete(&types.Dvd{}, "id = ?", id).Error
}

func (dr *dvdRepo) DecreaseAvailable(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) (int64, error) {
	res := dr.conn(tx).WithContext(ctx).
		Model(&types.Dvd{}).
		Where("id = ? AND copies_available >= ?", id, count).
		Updates(map[string]any{
			"copies_available": gorm.Expr("copies_available - ?", count),
			"available":        gorm.Expr("copies_available - ? > 0", count),
		})
	return res.RowsAffected, res.Error
}

func (dr *dvdRepo) IncreaseAvailable(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) (int64, error) {
	res := dr.conn(tx).WithContext(ctx).
		Model(&types.Dvd{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"copies_available": gorm.Expr("copies_available + ?", count),
			"available":        gorm.Expr("copies_available + ? > 0", count),
		})
	return res.RowsAffected, res.Error
}
