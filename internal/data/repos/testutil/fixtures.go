package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
)

func SeedUser(tb testing.TB, db *gorm.DB, role string) *types.User {
	tb.Helper()
	u := &types.User{
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Password: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixt",
		Nickname: "fixture",
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedDvd creates a title with the given copy count fully available.
func SeedDvd(tb testing.TB, db *gorm.DB, copies int, pricePerDay string) *types.Dvd {
	tb.Helper()
	price, err := decimal.NewFromString(pricePerDay)
	if err != nil {
		tb.Fatalf("parse price %q: %v", pricePerDay, err)
	}
	d := &types.Dvd{
		Title:             fmt.Sprintf("Fixture Film %s", uuid.NewString()[:8]),
		Description:       "A film inserted by a test fixture.",
		ReleaseYear:       2001,
		DurationMinutes:   120,
		RentalPricePerDay: price,
		CopiesTotal:       copies,
		CopiesAvailable:   copies,
		Available:         copies > 0,
	}
	if err := db.Create(d).Error; err != nil {
		tb.Fatalf("seed dvd: %v", err)
	}
	return d
}

// SeedReservation creates a reservation in the given status. It does NOT
// touch the ledger; callers that need held copies seed the dvd accordingly.
func SeedReservation(tb testing.TB, db *gorm.DB, dvd *types.Dvd, user *types.User, count int, status types.ReservationStatus) *types.Reservation {
	tb.Helper()
	now := time.Now().UTC()
	r := &types.Reservation{
		DvdID:       dvd.ID,
		UserID:      user.ID,
		RentalStart: now,
		RentalEnd:   now.AddDate(0, 0, 7),
		Count:       count,
		Status:      status,
	}
	if err := db.Create(r).Error; err != nil {
		tb.Fatalf("seed reservation: %v", err)
	}
	return r
}

// SeedRental creates a rental in the given status whose period ends at end.
func SeedRental(tb testing.TB, db *gorm.DB, dvd *types.Dvd, user *types.User, count int, end time.Time, status types.RentalStatus) *types.Rental {
	tb.Helper()
	res := SeedReservation(tb, db, dvd, user, count, types.ReservationAccepted)
	r := &types.Rental{
		ReservationID: res.ID,
		DvdID:         dvd.ID,
		UserID:        user.ID,
		RentalStart:   end.AddDate(0, 0, -7),
		RentalEnd:     end,
		Count:         count,
		Status:        status,
	}
	if err := db.Create(r).Error; err != nil {
		tb.Fatalf("seed rental: %v", err)
	}
	return r
}
