package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

func TestCheckAvailability(t *testing.T) {
	if err := CheckAvailability(nil); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("nil dvd: expected validation error, got %v", err)
	}
	if err := CheckAvailability(&types.Dvd{Title: "Heat", Available: false}); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("unavailable dvd: expected validation error, got %v", err)
	}
	if err := CheckAvailability(&types.Dvd{Title: "Heat", Available: true}); err != nil {
		t.Fatalf("available dvd: expected nil, got %v", err)
	}
}

func TestCheckCopyCount(t *testing.T) {
	dvd := &types.Dvd{CopiesAvailable: 3}

	if err := CheckCopyCount(dvd, 0); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("zero count: expected validation error, got %v", err)
	}
	if err := CheckCopyCount(dvd, -1); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("negative count: expected validation error, got %v", err)
	}
	if err := CheckCopyCount(dvd, 4); !apierr.IsCode(err, apierr.CodeInsufficientInventory) {
		t.Fatalf("too many copies: expected insufficient inventory, got %v", err)
	}
	if err := CheckCopyCount(dvd, 3); err != nil {
		t.Fatalf("exact count: expected nil, got %v", err)
	}
}

func TestCheckReservationPeriod(t *testing.T) {
	now := time.Now()

	if err := CheckReservationPeriod(time.Time{}, now); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("zero start: expected validation error, got %v", err)
	}
	if err := CheckReservationPeriod(now, now); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("start == end: expected validation error, got %v", err)
	}
	if err := CheckReservationPeriod(now.Add(time.Hour), now); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("start after end: expected validation error, got %v", err)
	}
	if err := CheckReservationPeriod(now, now.Add(7*24*time.Hour)); err != nil {
		t.Fatalf("valid period: expected nil, got %v", err)
	}
}

func TestCheckCancellationOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	res := &types.Reservation{UserID: owner, Status: types.ReservationPending}

	if err := CheckCancellationOwnership(res, stranger); !apierr.IsCode(err, apierr.CodeForbidden) {
		t.Fatalf("non-owner: expected forbidden, got %v", err)
	}
	if err := CheckCancellationOwnership(res, owner); err != nil {
		t.Fatalf("owner on pending: expected nil, got %v", err)
	}

	res.Status = types.ReservationAccepted
	if err := CheckCancellationOwnership(res, owner); !apierr.IsCode(err, apierr.CodeInvalidStateTransition) {
		t.Fatalf("terminal reservation: expected invalid state transition, got %v", err)
	}
}

func TestDvdFieldChecks(t *testing.T) {
	if err := CheckDvdTitle("  "); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("blank title: expected validation error, got %v", err)
	}
	if err := CheckDvdReleaseYear(1500); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("pre-cinema year: expected validation error, got %v", err)
	}
	if err := CheckDvdPrice(decimal.Zero); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("zero price: expected validation error, got %v", err)
	}
	if err := CheckDvdCopies(-1); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("negative copies: expected validation error, got %v", err)
	}
	if err := CheckDvdPrice(decimal.NewFromFloat(4.00)); err != nil {
		t.Fatalf("valid price: expected nil, got %v", err)
	}
}
