package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	rentalrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/rental"
	"github.com/reelstack/dvdrental-backend/internal/data/repos/testutil"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

type testStack struct {
	db           *gorm.DB
	dvdRepo      catalogrepo.DvdRepo
	rentalRepo   rentalrepo.RentalRepo
	billingRepo  rentalrepo.BillingRepo
	reservations ReservationService
	rentals      RentalService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	dvdRepo := catalogrepo.NewDvdRepo(db, log)
	reservationRepo := rentalrepo.NewReservationRepo(db, log)
	rentRepo := rentalrepo.NewRentalRepo(db, log)
	billingRepo := rentalrepo.NewBillingRepo(db, log)

	inventory := NewInventoryService(log, dvdRepo)
	billing := NewBillingService(log)
	notifier := NewLogNotifier(log)

	return &testStack{
		db:          db,
		dvdRepo:     dvdRepo,
		rentalRepo:  rentRepo,
		billingRepo: billingRepo,
		reservations: NewReservationService(
			db, log, dvdRepo, reservationRepo, rentRepo, inventory, notifier),
		rentals: NewRentalService(
			db, log, dvdRepo, rentRepo, billingRepo, billing, inventory, notifier),
	}
}

func (s *testStack) reloadDvd(t *testing.T, id uuid.UUID) *types.Dvd {
	t.Helper()
	var dvd types.Dvd
	if err := s.db.First(&dvd, "id = ?", id).Error; err != nil {
		t.Fatalf("reload dvd: %v", err)
	}
	return &dvd
}

func periodInput(dvd *types.Dvd, count int) CreateReservationInput {
	now := time.Now().UTC()
	return CreateReservationInput{
		DvdID:       dvd.ID,
		RentalStart: now,
		RentalEnd:   now.AddDate(0, 0, 7),
		Count:       count,
	}
}

func TestReservationRoundTrip(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 5, "4.00")

	res, err := s.reservations.Create(ctx, user.ID, periodInput(dvd, 2))
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	if res.Status != types.ReservationPending {
		t.Fatalf("expected PENDING, got %s", res.Status)
	}
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 3 {
		t.Fatalf("expected 3 copies available after hold, got %d", got)
	}

	if err := s.reservations.Cancel(ctx, res.ID, user.ID); err != nil {
		t.Fatalf("cancel reservation: %v", err)
	}
	after := s.reloadDvd(t, dvd.ID)
	if after.CopiesAvailable != 5 {
		t.Fatalf("expected 5 copies back after cancel, got %d", after.CopiesAvailable)
	}
	if !after.Available {
		t.Fatal("expected dvd to be available again")
	}

	var reloaded types.Reservation
	if err := s.db.First(&reloaded, "id = ?", res.ID).Error; err != nil {
		t.Fatalf("reload reservation: %v", err)
	}
	if reloaded.Status != types.ReservationCancelled {
		t.Fatalf("expected CANCELLED, got %s", reloaded.Status)
	}
}

func TestReservationCreate_InsufficientCopies(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 2, "4.00")

	_, err := s.reservations.Create(ctx, user.ID, periodInput(dvd, 3))
	if !apierr.IsCode(err, apierr.CodeInsufficientInventory) {
		t.Fatalf("expected insufficient_inventory, got %v", err)
	}
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 2 {
		t.Fatalf("failed create must not touch the ledger, got %d copies", got)
	}
}

// Two competing holds for 3 of 5 copies: exactly one may win.
func TestReservationCreate_ConcurrentOversell(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 5, "4.00")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.reservations.Create(ctx, user.ID, periodInput(dvd, 3))
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			if !apierr.IsCode(err, apierr.CodeInsufficientInventory) {
				t.Fatalf("unexpected failure kind: %v", err)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly one loser, got %d failures", failures)
	}
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 2 {
		t.Fatalf("expected 2 copies left, got %d", got)
	}
}

func TestReservationCancel_NotOwner(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, s.db, types.RoleUser)
	other := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 5, "4.00")

	res, err := s.reservations.Create(ctx, owner.ID, periodInput(dvd, 1))
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	err = s.reservations.Cancel(ctx, res.ID, other.ID)
	if !apierr.IsCode(err, apierr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 4 {
		t.Fatalf("hold must survive a rejected cancel, got %d copies", got)
	}
}

// A terminal reservation must reject further transitions without releasing
// copies a second time.
func TestReservationRelease_Twice(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 5, "4.00")

	res, err := s.reservations.Create(ctx, user.ID, periodInput(dvd, 2))
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	if err := s.reservations.Cancel(ctx, res.ID, user.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	err = s.reservations.Cancel(ctx, res.ID, user.ID)
	if !apierr.IsCode(err, apierr.CodeInvalidStateTransition) {
		t.Fatalf("expected invalid_state_transition, got %v", err)
	}
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 5 {
		t.Fatalf("copies must be released exactly once, got %d", got)
	}
}

func TestReservationAccept_SpawnsActiveRental(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 5, "4.00")

	res, err := s.reservations.Create(ctx, user.ID, periodInput(dvd, 2))
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	rental, err := s.reservations.Accept(ctx, res.ID)
	if err != nil {
		t.Fatalf("accept reservation: %v", err)
	}
	if rental.Status != types.RentalActive {
		t.Fatalf("expected ACTIVE rental, got %s", rental.Status)
	}
	if rental.Count != 2 || rental.ReservationID != res.ID {
		t.Fatalf("rental must carry the reservation's hold: %+v", rental)
	}

	// The hold transfers; accepting must not move the ledger.
	if got := s.reloadDvd(t, dvd.ID).CopiesAvailable; got != 3 {
		t.Fatalf("expected 3 copies available after accept, got %d", got)
	}

	if _, err := s.reservations.Accept(ctx, res.ID); !apierr.IsCode(err, apierr.CodeInvalidStateTransition) {
		t.Fatalf("second accept must fail with invalid_state_transition, got %v", err)
	}
}

func TestReservationCreate_UnknownDvd(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 1, "4.00")

	in := periodInput(dvd, 1)
	if err := s.db.Exec(`DELETE FROM dvds WHERE id = ?`, dvd.ID).Error; err != nil {
		t.Fatalf("delete dvd: %v", err)
	}

	_, err := s.reservations.Create(ctx, user.ID, in)
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
