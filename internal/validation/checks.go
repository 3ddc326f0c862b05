// Package validation holds the side-effect-free precondition checks the
// lifecycles run before any mutation. Every check returns nil or a typed
// apierr; none of them touches the ledger or the store.
package validation

import (
	"time"

	"github.com/google/uuid"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

func CheckAvailability(dvd *types.Dvd) error {
	if dvd == nil {
		return apierr.Validation("dvd is required")
	}
	if !dvd.Available {
		return apierr.Validation("dvd %q is not available for reservation", dvd.Title)
	}
	return nil
}

func CheckCopyCount(dvd *types.Dvd, requested int) error {
	if dvd == nil {
		return apierr.Validation("dvd is required")
	}
	if requested <= 0 {
		return apierr.Validation("copy count must be greater than zero")
	}
	if requested > dvd.CopiesAvailable {
		return apierr.InsufficientInventory(
			"insufficient copies available: requested %d, available %d",
			requested, dvd.CopiesAvailable)
	}
	return nil
}

func CheckReservationPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apierr.Validation("rental dates are required")
	}
	if !start.Before(end) {
		return apierr.Validation("rental start must be before rental end")
	}
	return nil
}

func CheckCancellationOwnership(res *types.Reservation, requesterID uuid.UUID) error {
	if res == nil {
		return apierr.Validation("reservation is required")
	}
	if res.Status != types.ReservationPending {
		return apierr.InvalidStateTransition("only pending reservations can be cancelled")
	}
	if res.UserID != requesterID {
		return apierr.Forbidden("users can only cancel their own reservations")
	}
	return nil
}
