package rental

import "testing"

func TestReservationTransitions(t *testing.T) {
	if !ReservationPending.CanTransitionTo(ReservationAccepted) {
		t.Fatalf("expected PENDING -> ACCEPTED to be allowed")
	}
	if !ReservationPending.CanTransitionTo(ReservationRejected) {
		t.Fatalf("expected PENDING -> REJECTED to be allowed")
	}
	if !ReservationPending.CanTransitionTo(ReservationCancelled) {
		t.Fatalf("expected PENDING -> CANCELLED to be allowed")
	}

	for _, s := range []ReservationStatus{ReservationAccepted, ReservationRejected, ReservationCancelled} {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
		if s.CanTransitionTo(ReservationPending) {
			t.Fatalf("expected %s -> PENDING to be rejected", s)
		}
	}
	if ReservationPending.Terminal() {
		t.Fatalf("PENDING must not be terminal")
	}
}

func TestRentalTransitions(t *testing.T) {
	if !RentalActive.CanTransitionTo(RentalReturnRequested) {
		t.Fatalf("expected ACTIVE -> RETURN_REQUESTED to be allowed")
	}
	if !RentalReturnRequested.CanTransitionTo(RentalActive) {
		t.Fatalf("declined return must move RETURN_REQUESTED back to ACTIVE")
	}
	if !RentalReturnRequested.CanTransitionTo(RentalInactive) {
		t.Fatalf("expected RETURN_REQUESTED -> INACTIVE to be allowed")
	}
	if RentalInactive.CanTransitionTo(RentalActive) || !RentalInactive.Terminal() {
		t.Fatalf("INACTIVE must be terminal")
	}
	if !RentalActive.Holding() || !RentalReturnRequested.Holding() {
		t.Fatalf("ACTIVE and RETURN_REQUESTED must hold a ledger allocation")
	}
	if RentalInactive.Holding() {
		t.Fatalf("INACTIVE must not hold a ledger allocation")
	}
}
