package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	"github.com/reelstack/dvdrental-backend/internal/data/repos/testutil"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

func newDvdService(t *testing.T, s *testStack) DvdService {
	t.Helper()
	log := testutil.Logger(t)
	genreRepo := catalogrepo.NewGenreRepo(s.db, log)
	return NewDvdService(s.db, log, s.dvdRepo, genreRepo,
		NewInventoryService(log, s.dvdRepo), NewLogNotifier(log))
}

func TestDvdCreateAndAddCopies(t *testing.T) {
	s := newTestStack(t)
	svc := newDvdService(t, s)
	ctx := context.Background()

	dvd, err := svc.Create(ctx, CreateDvdInput{
		Title:             "The Conversation",
		Description:       "A surveillance expert has a crisis of conscience.",
		ReleaseYear:       1974,
		DurationMinutes:   113,
		RentalPricePerDay: decimal.NewFromFloat(3.50),
		Copies:            3,
	})
	if err != nil {
		t.Fatalf("create dvd: %v", err)
	}
	if dvd.CopiesTotal != 3 || dvd.CopiesAvailable != 3 || !dvd.Available {
		t.Fatalf("fresh title must have all copies available: %+v", dvd)
	}

	if err := svc.AddCopies(ctx, dvd.ID, 2); err != nil {
		t.Fatalf("add copies: %v", err)
	}
	got := s.reloadDvd(t, dvd.ID)
	if got.CopiesTotal != 5 || got.CopiesAvailable != 5 {
		t.Fatalf("expected 5/5 after restock, got %d/%d", got.CopiesAvailable, got.CopiesTotal)
	}
}

func TestDvdCreate_RejectsBadFields(t *testing.T) {
	s := newTestStack(t)
	svc := newDvdService(t, s)

	_, err := svc.Create(context.Background(), CreateDvdInput{
		Title:             "",
		Description:       "Missing a title.",
		ReleaseYear:       1999,
		DurationMinutes:   90,
		RentalPricePerDay: decimal.NewFromFloat(1.00),
		Copies:            1,
	})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestDvdCreate_UnknownGenre(t *testing.T) {
	s := newTestStack(t)
	svc := newDvdService(t, s)

	_, err := svc.Create(context.Background(), CreateDvdInput{
		Title:             "Stalker",
		Description:       "A guide leads two men into the Zone.",
		ReleaseYear:       1979,
		DurationMinutes:   162,
		RentalPricePerDay: decimal.NewFromFloat(2.00),
		Copies:            1,
		GenreIDs:          []uuid.UUID{uuid.New()},
	})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation_error for unknown genre, got %v", err)
	}
}

func TestDvdDelete_RefusedWhileCopiesHeld(t *testing.T) {
	s := newTestStack(t)
	svc := newDvdService(t, s)
	ctx := context.Background()
	user := testutil.SeedUser(t, s.db, types.RoleUser)
	dvd := testutil.SeedDvd(t, s.db, 3, "2.00")

	if _, err := s.reservations.Create(ctx, user.ID, periodInput(dvd, 1)); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	err := svc.Delete(ctx, dvd.ID)
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected the delete to be refused while copies are out, got %v", err)
	}
}
