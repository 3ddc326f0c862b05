package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// AvailabilityEvent is what external notifiers consume when a title comes
// back into stock.
type AvailabilityEvent struct {
	DvdID      uuid.UUID `json:"dvd_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AvailabilityBus publishes availability events on a redis channel. It
// satisfies services.AvailabilityNotifier.
type AvailabilityBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewAvailabilityBus(baseLog *logger.Logger, addr, channel string) (*AvailabilityBus, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if channel == "" {
		channel = "dvd.available"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &AvailabilityBus{
		log:     baseLog.With("client", "AvailabilityBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

// NotifyAvailable is fire-and-forget: a dropped event only delays a
// storefront notification, it never blocks or fails a lifecycle operation.
func (b *AvailabilityBus) NotifyAvailable(ctx context.Context, dvdID uuid.UUID, title string) {
	raw, err := json.Marshal(AvailabilityEvent{
		DvdID:      dvdID,
		Title:      title,
		OccurredAt: time.Now(),
	})
	if err != nil {
		b.log.Warn("Marshal availability event failed", "dvd_id", dvdID, "error", err)
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		b.log.Warn("Publish availability event failed", "dvd_id", dvdID, "error", err)
	}
}

func (b *AvailabilityBus) Close() error {
	return b.rdb.Close()
}
