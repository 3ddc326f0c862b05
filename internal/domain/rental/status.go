package rental

// Lifecycle states. Transitions are described by explicit tables so that an
// illegal move is rejected in one place instead of scattered status checks.

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationAccepted  ReservationStatus = "ACCEPTED"
	ReservationRejected  ReservationStatus = "REJECTED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending: {ReservationAccepted, ReservationRejected, ReservationCancelled},
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return len(reservationTransitions[s]) == 0
}

type RentalStatus string

const (
	RentalActive          RentalStatus = "ACTIVE"
	RentalReturnRequested RentalStatus = "RETURN_REQUESTED"
	RentalInactive        RentalStatus = "INACTIVE"
)

// RETURN_REQUESTED -> ACTIVE is the single allowed backward move: a declined
// return puts the loan back in circulation.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalActive:          {RentalReturnRequested, RentalInactive},
	RentalReturnRequested: {RentalActive, RentalInactive},
}

func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RentalStatus) Terminal() bool {
	return len(rentalTransitions[s]) == 0
}

// Holding reports whether a record in this state still owns a ledger
// allocation of its copy count.
func (s RentalStatus) Holding() bool {
	return s == RentalActive || s == RentalReturnRequested
}
