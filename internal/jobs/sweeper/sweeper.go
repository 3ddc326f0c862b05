// Package sweeper runs the periodic expiry pass over active rentals.
package sweeper

import (
	"context"
	"time"

	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

const DefaultInterval = 5 * time.Minute

type Sweeper struct {
	log      *logger.Logger
	rentals  services.RentalService
	interval time.Duration
}

func New(baseLog *logger.Logger, rentals services.RentalService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		log:      baseLog.With("job", "sweeper"),
		rentals:  rentals,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled, performing one pass immediately and
// then one per interval. A failed pass is logged and the loop keeps going.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("sweeper started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	result, err := s.rentals.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("sweep pass failed", "error", err)
		return
	}
	if result.TotalExpired > 0 {
		s.log.Info("sweep pass done",
			"total_expired", result.TotalExpired,
			"processed", result.ProcessedSuccessfully,
			"failed", result.FailedToProcess)
	}
}
