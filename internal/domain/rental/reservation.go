package rental

import (
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/dvdrental-backend/internal/domain/catalog"
)

// Reservation is a provisional hold of Count copies awaiting an admin
// accept/decline or a requester cancellation. While PENDING it owns one
// ledger allocation; every terminal state except ACCEPTED releases it
// (ACCEPTED transfers the hold to the spawned Rental).
type Reservation struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DvdID  uuid.UUID `gorm:"type:uuid;index;not null;column:dvd_id" json:"dvd_id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	RentalStart time.Time `gorm:"not null;column:rental_start" json:"rental_start"`
	RentalEnd   time.Time `gorm:"not null;column:rental_end" json:"rental_end"`
	Count       int       `gorm:"not null;column:count" json:"count"`

	Status    ReservationStatus `gorm:"not null;default:'PENDING';column:status" json:"status"`
	CreatedAt time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:now()" json:"updated_at"`

	Dvd *catalog.Dvd `gorm:"foreignKey:DvdID" json:"dvd,omitempty"`
}

func (Reservation) TableName() string { return "reservations" }
