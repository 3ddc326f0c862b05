package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// AvailabilityNotifier receives the event a title emits when its free copy
// count moves from zero back to positive. Delivery (mail, push, ...) is an
// external concern; the default implementation only logs.
type AvailabilityNotifier interface {
	NotifyAvailable(ctx context.Context, dvdID uuid.UUID, title string)
}

type logNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(baseLog *logger.Logger) AvailabilityNotifier {
	return &logNotifier{log: baseLog.With("service", "AvailabilityNotifier")}
}

func (ln *logNotifier) NotifyAvailable(_ context.Context, dvdID uuid.UUID, title string) {
	ln.log.Info("DVD became available", "dvd_id", dvdID, "title", title)
}
