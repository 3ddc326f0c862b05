package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillType string

const (
	BillInvoice BillType = "INVOICE"
	BillReceipt BillType = "RECEIPT"
)

// BillingRecord is the immutable financial outcome of a closed rental.
// It is written once by the billing service and never updated.
type BillingRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RentalID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:rental_id" json:"rental_id"`

	InvoiceID        string          `gorm:"uniqueIndex;not null;column:invoice_id" json:"invoice_id"`
	DvdTitle         string          `gorm:"not null;column:dvd_title" json:"dvd_title"`
	RentalPeriodDays int             `gorm:"not null;column:rental_period_days" json:"rental_period_days"`
	PricePerDay      decimal.Decimal `gorm:"type:numeric(10,2);not null;column:price_per_day" json:"price_per_day"`
	LateFee          decimal.Decimal `gorm:"type:numeric(10,2);not null;column:late_fee" json:"late_fee"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null;column:total_amount" json:"total_amount"`

	BillType    BillType  `gorm:"not null;default:'INVOICE';column:bill_type" json:"bill_type"`
	GeneratedAt time.Time `gorm:"not null;column:generated_at" json:"generated_at"`
}

func (BillingRecord) TableName() string { return "billing_records" }
