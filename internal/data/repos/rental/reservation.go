package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type ReservationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reservations []*types.Reservation) ([]*types.Reservation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Reservation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status *types.ReservationStatus) ([]*types.Reservation, error)
	List(ctx context.Context, tx *gorm.DB, status *types.ReservationStatus) ([]*types.Reservation, error)

	// UpdateStatusFrom moves id from one status to another in a single
	// guarded UPDATE. Zero rows affected means the reservation was not in
	// the expected state (or does not exist) at write time, which is how
	// concurrent double-accepts are caught.
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.ReservationStatus) (int64, error)
}

type reservationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReservationRepo(db *gorm.DB, baseLog *logger.Logger) ReservationRepo {
	return &reservationRepo{db: db, log: baseLog.With("repo", "ReservationRepo")}
}

func (rr *reservationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reservationRepo) Create(ctx context.Context, tx *gorm.DB, reservations []*types.Reservation) ([]*types.Reservation, error) {
	if len(reservations) == 0 {
		return []*types.Reservation{}, nil
	}
	if err := rr.conn(tx).WithContext(ctx).Create(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (rr *reservationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Reservation, error) {
	var r types.Reservation
	if err := rr.conn(tx).WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *reservationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status *types.ReservationStatus) ([]*types.Reservation, error) {
	q := rr.conn(tx).WithContext(ctx).
		Preload("Dvd").
		Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reservations []*types.Reservation
	if err := q.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (rr *reservationRepo) List(ctx context.Context, tx *gorm.DB, status *types.ReservationStatus) ([]*types.Reservation, error) {
	q := rr.conn(tx).WithContext(ctx).Preload("Dvd")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reservations []*types.Reservation
	if err := q.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (rr *reservationRepo) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.ReservationStatus) (int64, error) {
	res := rr.conn(tx).WithContext(ctx).
		Model(&types.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
