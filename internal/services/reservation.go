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
	"github.com/reelstack/dvdrental-backend/internal/validation"
)

type CreateReservationInput struct {
	DvdID       uuid.UUID `json:"dvd_id"`
	RentalStart time.Time `json:"rental_start"`
	RentalEnd   time.Time `json:"rental_end"`
	Count       int       `json:"count"`
}

// ReservationService drives a hold request from PENDING to one of its
// terminal states. Every operation that pairs a ledger call with a status
// write runs both inside one transaction; a failed ledger call rolls the
// status write back and vice versa.
type ReservationService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateReservationInput) (*types.Reservation, error)
	Accept(ctx context.Context, id uuid.UUID) (*types.Rental, error)
	Decline(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID) error

	ListForUser(ctx context.Context, userID uuid.UUID, status *types.ReservationStatus) ([]*types.Reservation, error)
	ListAll(ctx context.Context, status *types.ReservationStatus) ([]*types.Reservation, error)
}

type reservationService struct {
	db              *gorm.DB
	log             *logger.Logger
	dvdRepo         catalogrepo.DvdRepo
	reservationRepo rentalrepo.ReservationRepo
	rentalRepo      rentalrepo.RentalRepo
	inventory       InventoryService
	notifier        AvailabilityNotifier
}

func NewReservationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	dvdRepo catalogrepo.DvdRepo,
	reservationRepo rentalrepo.ReservationRepo,
	rentalRepo rentalrepo.RentalRepo,
	inventory InventoryService,
	notifier AvailabilityNotifier,
) ReservationService {
	return &reservationService{
		db:              db,
		log:             baseLog.With("service", "ReservationService"),
		dvdRepo:         dvdRepo,
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		inventory:       inventory,
		notifier:        notifier,
	}
}

func (rs *reservationService) Create(ctx context.Context, userID uuid.UUID, in CreateReservationInput) (*types.Reservation, error) {
	if err := validation.CheckReservationPeriod(in.RentalStart, in.RentalEnd); err != nil {
		return nil, err
	}

	var created *types.Reservation
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dvd, err := rs.dvdRepo.GetByID(ctx, tx, in.DvdID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("dvd %s not found", in.DvdID)
		}
		if err != nil {
			return err
		}

		if err := validation.CheckAvailability(dvd); err != nil {
			return err
		}
		if err := validation.CheckCopyCount(dvd, in.Count); err != nil {
			return err
		}

		// The authoritative oversell guard; the gate check above can race.
		if err := rs.inventory.Decrease(ctx, tx, dvd.ID, in.Count); err != nil {
			return err
		}

		reservation := &types.Reservation{
			DvdID:       dvd.ID,
			UserID:      userID,
			RentalStart: in.RentalStart,
			RentalEnd:   in.RentalEnd,
			Count:       in.Count,
			Status:      types.ReservationPending,
		}
		if _, err := rs.reservationRepo.Create(ctx, tx, []*types.Reservation{reservation}); err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.log.Info("Reservation created",
		"reservation_id", created.ID, "dvd_id", created.DvdID, "count", created.Count)
	return created, nil
}

func (rs *reservationService) Accept(ctx context.Context, id uuid.UUID) (*types.Rental, error) {
	var spawned *types.Rental
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := rs.getReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		rows, err := rs.reservationRepo.UpdateStatusFrom(ctx, tx, id,
			types.ReservationPending, types.ReservationAccepted)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierr.InvalidStateTransition(
				"only pending reservations can be accepted (status %s)", reservation.Status)
		}

		// The hold transfers to the rental as-is; no ledger call here.
		rental := &types.Rental{
			ReservationID: reservation.ID,
			DvdID:         reservation.DvdID,
			UserID:        reservation.UserID,
			RentalStart:   reservation.RentalStart,
			RentalEnd:     reservation.RentalEnd,
			Count:         reservation.Count,
			Status:        types.RentalActive,
		}
		if _, err := rs.rentalRepo.Create(ctx, tx, []*types.Rental{rental}); err != nil {
			return err
		}
		spawned = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.log.Info("Reservation accepted", "reservation_id", id, "rental_id", spawned.ID)
	return spawned, nil
}

func (rs *reservationService) Decline(ctx context.Context, id uuid.UUID) error {
	return rs.release(ctx, id, types.ReservationRejected, nil)
}

func (rs *reservationService) Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return rs.release(ctx, id, types.ReservationCancelled, &userID)
}

// release is the shared decline/cancel path: give the held copies back to
// the ledger and move the reservation to its terminal state, atomically.
func (rs *reservationService) release(ctx context.Context, id uuid.UUID, terminal types.ReservationStatus, requesterID *uuid.UUID) error {
	var available *types.Dvd
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := rs.getReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if requesterID != nil {
			if err := validation.CheckCancellationOwnership(reservation, *requesterID); err != nil {
				return err
			}
		}

		rows, err := rs.reservationRepo.UpdateStatusFrom(ctx, tx, id,
			types.ReservationPending, terminal)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierr.InvalidStateTransition(
				"only pending reservations can move to %s (status %s)", terminal, reservation.Status)
		}

		dvd, becameAvailable, err := rs.inventory.Increase(ctx, tx, reservation.DvdID, reservation.Count)
		if err != nil {
			return err
		}
		if becameAvailable {
			available = dvd
		}
		return nil
	})
	if err != nil {
		return err
	}

	rs.log.Info("Reservation released", "reservation_id", id, "status", terminal)
	if available != nil {
		rs.notifier.NotifyAvailable(ctx, available.ID, available.Title)
	}
	return nil
}

func (rs *reservationService) ListForUser(ctx context.Context, userID uuid.UUID, status *types.ReservationStatus) ([]*types.Reservation, error) {
	return rs.reservationRepo.ListByUser(ctx, nil, userID, status)
}

func (rs *reservationService) ListAll(ctx context.Context, status *types.ReservationStatus) ([]*types.Reservation, error) {
	return rs.reservationRepo.List(ctx, nil, status)
}

func (rs *reservationService) getReservation(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Reservation, error) {
	reservation, err := rs.reservationRepo.GetByID(ctx, tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("reservation %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}
