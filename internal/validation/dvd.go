package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

const (
	titleMaxLength       = 200
	descriptionMaxLength = 2000
	firstFilmYear        = 1888
)

func CheckDvdTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return apierr.Validation("dvd title is required")
	}
	if len(t) > titleMaxLength {
		return apierr.Validation("dvd title must be at most %d characters", titleMaxLength)
	}
	return nil
}

func CheckDvdDescription(description string) error {
	if len(description) > descriptionMaxLength {
		return apierr.Validation("dvd description must be at most %d characters", descriptionMaxLength)
	}
	return nil
}

func CheckDvdReleaseYear(year int) error {
	if year < firstFilmYear || year > time.Now().Year()+1 {
		return apierr.Validation("release year %d is out of range", year)
	}
	return nil
}

func CheckDvdDuration(minutes int) error {
	if minutes <= 0 {
		return apierr.Validation("duration must be greater than zero")
	}
	return nil
}

func CheckDvdPrice(pricePerDay decimal.Decimal) error {
	if pricePerDay.IsNegative() || pricePerDay.IsZero() {
		return apierr.Validation("rental price per day must be greater than zero")
	}
	return nil
}

func CheckDvdCopies(copies int) error {
	if copies < 0 {
		return apierr.Validation("copy count cannot be negative")
	}
	return nil
}
