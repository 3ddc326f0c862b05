package app

import (
	"gorm.io/gorm"

	"github.com/reelstack/dvdrental-backend/internal/clients/redis"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Inventory   services.InventoryService
	Billing     services.BillingService
	Dvd         services.DvdService
	Reservation services.ReservationService
	Rental      services.RentalService
}

// wireServices also picks the availability notifier: the redis bus when an
// address is configured, a log-only fallback otherwise.
func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, *redis.AvailabilityBus, error) {
	log.Info("Wiring services...")

	var bus *redis.AvailabilityBus
	var notifier services.AvailabilityNotifier
	if cfg.RedisAddr != "" {
		b, err := redis.NewAvailabilityBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return Services{}, nil, err
		}
		bus = b
		notifier = b
	} else {
		notifier = services.NewLogNotifier(log)
	}

	inventory := services.NewInventoryService(log, repos.Dvd)
	billing := services.NewBillingService(log)

	return Services{
		Auth:      services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Inventory: inventory,
		Billing:   billing,
		Dvd:       services.NewDvdService(db, log, repos.Dvd, repos.Genre, inventory, notifier),
		Reservation: services.NewReservationService(
			db, log, repos.Dvd, repos.Reservation, repos.Rental, inventory, notifier),
		Rental: services.NewRentalService(
			db, log, repos.Dvd, repos.Rental, repos.Billing, billing, inventory, notifier),
	}, bus, nil
}
