package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dvd is a rentable title. CopiesAvailable and Available are owned by the
// inventory service; nothing else may write them.
type Dvd struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string          `gorm:"not null;column:title" json:"title"`
	Description     string          `gorm:"column:description" json:"description"`
	ReleaseYear     int             `gorm:"not null;column:release_year" json:"release_year"`
	DurationMinutes int             `gorm:"not null;column:duration_minutes" json:"duration_minutes"`
	PosterURL       string          `gorm:"column:poster_url" json:"poster_url"`
	Genres          []Genre         `gorm:"many2many:dvd_genres" json:"genres,omitempty"`
	RentalPricePerDay decimal.Decimal `gorm:"type:numeric(10,2);not null;column:rental_price_per_day" json:"rental_price_per_day"`

	CopiesTotal     int  `gorm:"not null;default:0;column:copies_total" json:"copies_total"`
	CopiesAvailable int  `gorm:"not null;default:0;column:copies_available" json:"copies_available"`
	Available       bool `gorm:"not null;default:false;column:available" json:"available"`

	AddedAt   time.Time `gorm:"not null;default:now()" json:"added_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Dvd) TableName() string { return "dvds" }
