package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	rentalrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/rental"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// SweepResult summarizes one expired-rental sweep. Rentals that left ACTIVE
// between the scan and their closure attempt count as failed, matching the
// per-entity isolation of the batch: nothing aborts the remaining items.
type SweepResult struct {
	TotalExpired          int `json:"total_expired"`
	ProcessedSuccessfully int `json:"processed_successfully"`
	FailedToProcess       int `json:"failed_to_process"`
}

// RentalService drives an active loan through return and closure. Closure
// writes the billing record, releases the ledger hold and flips the rental
// INACTIVE in one transaction.
type RentalService interface {
	RequestReturn(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	AcceptReturn(ctx context.Context, id uuid.UUID, now time.Time) (*types.BillingRecord, error)
	DeclineReturn(ctx context.Context, id uuid.UUID) error
	SweepExpired(ctx context.Context, now time.Time) (SweepResult, error)

	ListForUser(ctx context.Context, userID uuid.UUID, status *types.RentalStatus) ([]*types.Rental, error)
	ListReturnRequests(ctx context.Context) ([]*types.Rental, error)
}

type rentalService struct {
	db          *gorm.DB
	log         *logger.Logger
	dvdRepo     catalogrepo.DvdRepo
	rentalRepo  rentalrepo.RentalRepo
	billingRepo rentalrepo.BillingRepo
	billing     BillingService
	inventory   InventoryService
	notifier    AvailabilityNotifier
}

func NewRentalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	dvdRepo catalogrepo.DvdRepo,
	rentalRepo rentalrepo.RentalRepo,
	billingRepo rentalrepo.BillingRepo,
	billing BillingService,
	inventory InventoryService,
	notifier AvailabilityNotifier,
) RentalService {
	return &rentalService{
		db:          db,
		log:         baseLog.With("service", "RentalService"),
		dvdRepo:     dvdRepo,
		rentalRepo:  rentalRepo,
		billingRepo: billingRepo,
		billing:     billing,
		inventory:   inventory,
		notifier:    notifier,
	}
}

func (rs *rentalService) RequestReturn(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := rs.getRental(ctx, tx, id)
		if err != nil {
			return err
		}
		if rental.UserID != userID {
			return apierr.Forbidden("users can only return their own rentals")
		}

		rows, err := rs.rentalRepo.UpdateStatusFrom(ctx, tx, id,
			types.RentalActive, types.RentalReturnRequested)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierr.InvalidStateTransition(
				"return can only be requested for an active rental (status %s)", rental.Status)
		}
		return nil
	})
}

func (rs *rentalService) AcceptReturn(ctx context.Context, id uuid.UUID, now time.Time) (*types.BillingRecord, error) {
	record, available, err := rs.close(ctx, id, types.RentalReturnRequested, now)
	if err != nil {
		return nil, err
	}
	rs.log.Info("Return accepted", "rental_id", id, "invoice_id", record.InvoiceID)
	if available != nil {
		rs.notifier.NotifyAvailable(ctx, available.ID, available.Title)
	}
	return record, nil
}

func (rs *rentalService) DeclineReturn(ctx context.Context, id uuid.UUID) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := rs.getRental(ctx, tx, id)
		if err != nil {
			return err
		}

		// The hold stays allocated; the loan simply continues.
		rows, err := rs.rentalRepo.UpdateStatusFrom(ctx, tx, id,
			types.RentalReturnRequested, types.RentalActive)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierr.InvalidStateTransition(
				"no return requested for this rental (status %s)", rental.Status)
		}
		return nil
	})
}

// SweepExpired closes overdue ACTIVE rentals through the same billing-and-
// release path a manual return takes. Each rental is processed in its own
// transaction; one failure never rolls back the rest of the batch. Rentals
// already out of ACTIVE by the time the sweep runs are not found by the
// scan, which is what makes back-to-back sweeps idempotent.
func (rs *rentalService) SweepExpired(ctx context.Context, now time.Time) (SweepResult, error) {
	ids, err := rs.rentalRepo.FindExpiredActiveIDs(ctx, nil, now)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{TotalExpired: len(ids)}
	for _, id := range ids {
		record, available, err := rs.close(ctx, id, types.RentalActive, now)
		if err != nil {
			result.FailedToProcess++
			rs.log.Warn("Expired rental not processed", "rental_id", id, "error", err)
			continue
		}
		result.ProcessedSuccessfully++
		rs.log.Info("Expired rental closed", "rental_id", id, "invoice_id", record.InvoiceID)
		if available != nil {
			rs.notifier.NotifyAvailable(ctx, available.ID, available.Title)
		}
	}
	return result, nil
}

// close is the single closure path: bill, release the hold, set the return
// timestamp and flip the rental INACTIVE, all in one transaction. from is
// the status the rental must still be in when the guarded write lands.
func (rs *rentalService) close(ctx context.Context, id uuid.UUID, from types.RentalStatus, now time.Time) (*types.BillingRecord, *types.Dvd, error) {
	var (
		record    *types.BillingRecord
		available *types.Dvd
	)
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := rs.getRental(ctx, tx, id)
		if err != nil {
			return err
		}

		dvd, err := rs.dvdRepo.GetByID(ctx, tx, rental.DvdID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("dvd %s not found", rental.DvdID)
		}
		if err != nil {
			return err
		}

		rows, err := rs.rentalRepo.CloseFrom(ctx, tx, id, from, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierr.InvalidStateTransition(
				"rental cannot be closed from status %s (expected %s)", rental.Status, from)
		}

		rec := rs.billing.Close(rental, dvd, now)
		if _, err := rs.billingRepo.Create(ctx, tx, []*types.BillingRecord{rec}); err != nil {
			return err
		}

		released, becameAvailable, err := rs.inventory.Increase(ctx, tx, rental.DvdID, rental.Count)
		if err != nil {
			return err
		}
		if becameAvailable {
			available = released
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return record, available, nil
}

func (rs *rentalService) ListForUser(ctx context.Context, userID uuid.UUID, status *types.RentalStatus) ([]*types.Rental, error) {
	return rs.rentalRepo.ListByUser(ctx, nil, userID, status)
}

func (rs *rentalService) ListReturnRequests(ctx context.Context) ([]*types.Rental, error) {
	return rs.rentalRepo.ListByStatus(ctx, nil, types.RentalReturnRequested)
}

func (rs *rentalService) getRental(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Rental, error) {
	rental, err := rs.rentalRepo.GetByID(ctx, tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("rental %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rental, nil
}
