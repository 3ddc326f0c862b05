package rental

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// BillingRepo writes billing records once and only reads them afterwards.
type BillingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.BillingRecord) ([]*types.BillingRecord, error)
	GetByRentalID(ctx context.Context, tx *gorm.DB, rentalID uuid.UUID) (*types.BillingRecord, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BillingRecord, error)
}

type billingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBillingRepo(db *gorm.DB, baseLog *logger.Logger) BillingRepo {
	return &billingRepo{db: db, log: baseLog.With("repo", "BillingRepo")}
}

func (br *billingRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return br.db
}

func (br *billingRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.BillingRecord) ([]*types.BillingRecord, error) {
	if len(records) == 0 {
		return []*types.BillingRecord{}, nil
	}
	if err := br.conn(tx).WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (br *billingRepo) GetByRentalID(ctx context.Context, tx *gorm.DB, rentalID uuid.UUID) (*types.BillingRecord, error) {
	var rec types.BillingRecord
	if err := br.conn(tx).WithContext(ctx).First(&rec, "rental_id = ?", rentalID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (br *billingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BillingRecord, error) {
	var records []*types.BillingRecord
	if err := br.conn(tx).WithContext(ctx).
		Joins("JOIN rentals ON rentals.id = billing_records.rental_id").
		Where("rentals.user_id = ?", userID).
		Order("billing_records.generated_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
