package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type RentalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rentals []*types.Rental) ([]*types.Rental, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Rental, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status *types.RentalStatus) ([]*types.Rental, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status types.RentalStatus) ([]*types.Rental, error)

	// FindExpiredActiveIDs returns ids of rentals still ACTIVE whose agreed
	// end date has passed. Ids, not rows: the sweep re-reads each rental
	// inside its own transaction so a stale snapshot cannot drive a close.
	FindExpiredActiveIDs(ctx context.Context, tx *gorm.DB, now time.Time) ([]uuid.UUID, error)

	// UpdateStatusFrom is the guarded state-machine write; zero rows
	// affected means the rental left the expected state first.
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.RentalStatus) (int64, error)

	// CloseFrom is UpdateStatusFrom to INACTIVE plus the return timestamp.
	CloseFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from types.RentalStatus, returnedAt time.Time) (int64, error)
}

type rentalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRentalRepo(db *gorm.DB, baseLog *logger.Logger) RentalRepo {
	return &rentalRepo{db: db, log: baseLog.With("repo", "RentalRepo")}
}

func (rr *rentalRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *rentalRepo) Create(ctx context.Context, tx *gorm.DB, rentals []*types.Rental) ([]*types.Rental, error) {
	if len(rentals) == 0 {
		return []*types.Rental{}, nil
	}
	if err := rr.conn(tx).WithContext(ctx).Create(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (rr *rentalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Rental, error) {
	var r types.Rental
	if err := rr.conn(tx).WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *rentalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status *types.RentalStatus) ([]*types.Rental, error) {
	q := rr.conn(tx).WithContext(ctx).
		Preload("Dvd").
		Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var rentals []*types.Rental
	if err := q.Order("created_at DESC").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (rr *rentalRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status types.RentalStatus) ([]*types.Rental, error) {
	var rentals []*types.Rental
	if err := rr.conn(tx).WithContext(ctx).
		Preload("Dvd").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (rr *rentalRepo) FindExpiredActiveIDs(ctx context.Context, tx *gorm.DB, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Rental{}).
		Where("status = ? AND rental_end < ?", types.RentalActive, now).
		Order("rental_end ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (rr *rentalRepo) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.RentalStatus) (int64, error) {
	res := rr.conn(tx).WithContext(ctx).
		Model(&types.Rental{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (rr *rentalRepo) CloseFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from types.RentalStatus, returnedAt time.Time) (int64, error) {
	res := rr.conn(tx).WithContext(ctx).
		Model(&types.Rental{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":      types.RentalInactive,
			"returned_at": returnedAt,
			"updated_at":  time.Now(),
		})
	return res.RowsAffected, res.Error
}
