package rental

import (
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/dvdrental-backend/internal/domain/catalog"
)

// Rental is an active loan created from exactly one accepted reservation.
// The ledger hold carries over from the reservation unchanged and is
// released exactly once, when the rental goes INACTIVE.
type Rental struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:reservation_id" json:"reservation_id"`
	DvdID         uuid.UUID `gorm:"type:uuid;index;not null;column:dvd_id" json:"dvd_id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	RentalStart time.Time  `gorm:"not null;column:rental_start" json:"rental_start"`
	RentalEnd   time.Time  `gorm:"not null;column:rental_end" json:"rental_end"`
	ReturnedAt  *time.Time `gorm:"column:returned_at" json:"returned_at,omitempty"`
	Count       int        `gorm:"not null;column:count" json:"count"`

	Status    RentalStatus `gorm:"not null;default:'ACTIVE';column:status" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:now()" json:"updated_at"`

	Dvd *catalog.Dvd `gorm:"foreignKey:DvdID" json:"dvd,omitempty"`
}

func (Rental) TableName() string { return "rentals" }

func (r *Rental) Expired(now time.Time) bool {
	return r != nil && r.Status == RentalActive && r.RentalEnd.Before(now)
}
