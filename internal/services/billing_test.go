package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestBillingClose_OnTime(t *testing.T) {
	bs := NewBillingService(testLogger(t))

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	rental := &types.Rental{RentalStart: start, RentalEnd: end, Count: 1}
	dvd := &types.Dvd{Title: "Heat", RentalPricePerDay: decimal.NewFromFloat(4.00)}

	rec := bs.Close(rental, dvd, end)

	if rec.RentalPeriodDays != 7 {
		t.Fatalf("expected 7 billed days, got %d", rec.RentalPeriodDays)
	}
	if !rec.LateFee.Equal(decimal.Zero) {
		t.Fatalf("expected zero late fee, got %s", rec.LateFee)
	}
	if want := decimal.NewFromFloat(28.00); !rec.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, rec.TotalAmount)
	}
	if rec.BillType != types.BillInvoice {
		t.Fatalf("expected INVOICE bill type, got %s", rec.BillType)
	}
}

func TestBillingClose_TwoDaysLate(t *testing.T) {
	bs := NewBillingService(testLogger(t))

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	returned := end.AddDate(0, 0, 2)
	rental := &types.Rental{RentalStart: start, RentalEnd: end, Count: 1}
	dvd := &types.Dvd{Title: "Heat", RentalPricePerDay: decimal.NewFromFloat(4.00)}

	rec := bs.Close(rental, dvd, returned)

	// 7 days * 4.00 base, plus 2 late days * 4.00 * 10.
	if want := decimal.NewFromFloat(80.00); !rec.LateFee.Equal(want) {
		t.Fatalf("expected late fee %s, got %s", want, rec.LateFee)
	}
	if want := decimal.NewFromFloat(108.00); !rec.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, rec.TotalAmount)
	}
}

func TestBillingClose_MultipleCopies(t *testing.T) {
	bs := NewBillingService(testLogger(t))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	rental := &types.Rental{RentalStart: start, RentalEnd: end, Count: 2}
	dvd := &types.Dvd{Title: "Ran", RentalPricePerDay: decimal.NewFromFloat(2.50)}

	rec := bs.Close(rental, dvd, end)

	// Base scales with copies; a late fee would not.
	if want := decimal.NewFromFloat(15.00); !rec.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, rec.TotalAmount)
	}
}

func TestNewInvoiceID(t *testing.T) {
	bs := NewBillingService(testLogger(t))

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := bs.NewInvoiceID()
		if !strings.HasPrefix(id, "INV-") {
			t.Fatalf("unexpected invoice id format: %q", id)
		}
		parts := strings.Split(id, "-")
		if len(parts) != 3 || len(parts[2]) != 8 {
			t.Fatalf("unexpected invoice id shape: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate invoice id generated: %q", id)
		}
		seen[id] = true
	}
}
