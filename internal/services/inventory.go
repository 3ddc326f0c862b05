package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// InventoryService is the single writer of per-title copy counts. Both
// operations expect to run inside the caller's transaction so the ledger
// write commits or rolls back together with the lifecycle's status write.
type InventoryService interface {
	// Decrease holds count copies. Fails with an insufficient-inventory
	// error when fewer than count copies are free; the guard and the write
	// happen in one UPDATE, so two concurrent holds can never oversell.
	Decrease(ctx context.Context, tx *gorm.DB, dvdID uuid.UUID, count int) error

	// Increase releases count copies and returns the post-release row.
	// becameAvailable is true when the title moved from zero free copies to
	// some; callers publish the availability event after their transaction
	// commits.
	Increase(ctx context.Context, tx *gorm.DB, dvdID uuid.UUID, count int) (dvd *types.Dvd, becameAvailable bool, err error)
}

type inventoryService struct {
	log     *logger.Logger
	dvdRepo catalogrepo.DvdRepo
}

func NewInventoryService(baseLog *logger.Logger, dvdRepo catalogrepo.DvdRepo) InventoryService {
	return &inventoryService{
		log:     baseLog.With("service", "InventoryService"),
		dvdRepo: dvdRepo,
	}
}

func (is *inventoryService) Decrease(ctx context.Context, tx *gorm.DB, dvdID uuid.UUID, count int) error {
	if count <= 0 {
		return apierr.Validation("copy count must be greater than zero")
	}

	rows, err := is.dvdRepo.DecreaseAvailable(ctx, tx, dvdID, count)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Guard failed: missing row or not enough copies. Re-read to tell
		// the two apart; still inside the caller's transaction.
		dvd, getErr := is.dvdRepo.GetByID(ctx, tx, dvdID)
		if errors.Is(getErr, gorm.ErrRecordNotFound) {
			return apierr.NotFound("dvd %s not found", dvdID)
		}
		if getErr != nil {
			return getErr
		}
		return apierr.InsufficientInventory(
			"insufficient copies available: requested %d, available %d",
			count, dvd.CopiesAvailable)
	}

	is.log.Debug("Decreased availability", "dvd_id", dvdID, "count", count)
	return nil
}

func (is *inventoryService) Increase(ctx context.Context, tx *gorm.DB, dvdID uuid.UUID, count int) (*types.Dvd, bool, error) {
	if count <= 0 {
		return nil, false, apierr.Validation("copy count must be greater than zero")
	}

	rows, err := is.dvdRepo.IncreaseAvailable(ctx, tx, dvdID, count)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, apierr.NotFound("dvd %s not found", dvdID)
	}

	dvd, err := is.dvdRepo.GetByID(ctx, tx, dvdID)
	if err != nil {
		return nil, false, err
	}

	becameAvailable := dvd.CopiesAvailable == count
	is.log.Debug("Increased availability",
		"dvd_id", dvdID, "count", count, "became_available", becameAvailable)
	return dvd, becameAvailable, nil
}
