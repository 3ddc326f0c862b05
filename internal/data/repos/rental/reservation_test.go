package rental

import (
	"context"
	"testing"

	"github.com/reelstack/dvdrental-backend/internal/data/repos/testutil"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
)

func TestReservationUpdateStatusFromGuard(t *testing.T) {
	db := testutil.DB(t)
	repo := NewReservationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, db, types.RoleUser)
	dvd := testutil.SeedDvd(t, db, 3, "3.00")
	res := testutil.SeedReservation(t, db, dvd, user, 1, types.ReservationPending)

	rows, err := repo.UpdateStatusFrom(ctx, nil, res.ID, types.ReservationPending, types.ReservationAccepted)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected the guarded update to land, rows=%d", rows)
	}

	// The from-status no longer matches; a second attempt touches nothing.
	rows, err = repo.UpdateStatusFrom(ctx, nil, res.ID, types.ReservationPending, types.ReservationCancelled)
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected the guard to reject, rows=%d", rows)
	}

	got, err := repo.GetByID(ctx, nil, res.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != types.ReservationAccepted {
		t.Fatalf("expected ACCEPTED, got %s", got.Status)
	}
}
