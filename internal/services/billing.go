package services

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

const (
	// LateFeeMultiplier is applied per late day at the daily rate.
	LateFeeMultiplier = 10

	// DefaultRentalPeriodDays is the suggested loan length offered to the
	// storefront when the requester picks no explicit period.
	DefaultRentalPeriodDays = 7
)

// BillingService computes the financial outcome of a closed rental. It is
// pure: persistence of the produced record is the rental lifecycle's job,
// inside the same transaction that closes the loan.
type BillingService interface {
	Close(rental *types.Rental, dvd *types.Dvd, now time.Time) *types.BillingRecord
	NewInvoiceID() string
}

type billingService struct {
	log *logger.Logger
}

func NewBillingService(baseLog *logger.Logger) BillingService {
	return &billingService{log: baseLog.With("service", "BillingService")}
}

func (bs *billingService) Close(rental *types.Rental, dvd *types.Dvd, now time.Time) *types.BillingRecord {
	billedDays := daysBetween(rental.RentalStart, rental.RentalEnd)
	if billedDays < 1 {
		billedDays = 1
	}
	lateDays := 0
	if now.After(rental.RentalEnd) {
		lateDays = daysBetween(rental.RentalEnd, now)
	}

	rate := dvd.RentalPricePerDay
	baseAmount := rate.
		Mul(decimal.NewFromInt(int64(billedDays))).
		Mul(decimal.NewFromInt(int64(rental.Count)))
	lateFee := rate.
		Mul(decimal.NewFromInt(int64(LateFeeMultiplier))).
		Mul(decimal.NewFromInt(int64(lateDays)))
	total := baseAmount.Add(lateFee)

	bs.log.Info("Rental billed",
		"rental_id", rental.ID,
		"billed_days", billedDays,
		"late_days", lateDays,
		"late_fee", lateFee.StringFixed(2),
		"total", total.StringFixed(2),
	)

	return &types.BillingRecord{
		RentalID:         rental.ID,
		InvoiceID:        bs.NewInvoiceID(),
		DvdTitle:         dvd.Title,
		RentalPeriodDays: billedDays,
		PricePerDay:      rate,
		LateFee:          lateFee,
		TotalAmount:      total,
		BillType:         types.BillInvoice,
		GeneratedAt:      now,
	}
}

// NewInvoiceID builds a human-legible id from the current epoch millis and a
// short random suffix. The time component keeps ids roughly sortable; the
// suffix makes collisions within one millisecond practically impossible, so
// callers never retry.
func (bs *billingService) NewInvoiceID() string {
	u := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(u[:4]))
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), suffix)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
