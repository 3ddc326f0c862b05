// Package domain aggregates the per-area model packages so that callers can
// import a single types package.
package domain

import (
	"github.com/reelstack/dvdrental-backend/internal/domain/catalog"
	"github.com/reelstack/dvdrental-backend/internal/domain/rental"
	"github.com/reelstack/dvdrental-backend/internal/domain/user"
)

type (
	Dvd   = catalog.Dvd
	Genre = catalog.Genre

	User = user.User

	Reservation   = rental.Reservation
	Rental        = rental.Rental
	BillingRecord = rental.BillingRecord

	ReservationStatus = rental.ReservationStatus
	RentalStatus      = rental.RentalStatus
	BillType          = rental.BillType
)

const (
	RoleUser  = user.RoleUser
	RoleAdmin = user.RoleAdmin

	ReservationPending   = rental.ReservationPending
	ReservationAccepted  = rental.ReservationAccepted
	ReservationRejected  = rental.ReservationRejected
	ReservationCancelled = rental.ReservationCancelled

	RentalActive          = rental.RentalActive
	RentalReturnRequested = rental.RentalReturnRequested
	RentalInactive        = rental.RentalInactive

	BillInvoice = rental.BillInvoice
	BillReceipt = rental.BillReceipt
)

// AllModels is the automigration list.
func AllModels() []any {
	return []any{
		&Genre{},
		&Dvd{},
		&User{},
		&Reservation{},
		&Rental{},
		&BillingRecord{},
	}
}
