package app

import (
	"gorm.io/gorm"

	"github.com/reelstack/dvdrental-backend/internal/http/handlers"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Dvd         *handlers.DvdHandler
	Genre       *handlers.GenreHandler
	Reservation *handlers.ReservationHandler
	Rental      *handlers.RentalHandler
	Invoice     *handlers.InvoiceHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, repos Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      handlers.NewHealthHandler(db),
		Auth:        handlers.NewAuthHandler(log, services.Auth),
		Dvd:         handlers.NewDvdHandler(log, services.Dvd),
		Genre:       handlers.NewGenreHandler(log, repos.Genre),
		Reservation: handlers.NewReservationHandler(log, services.Reservation),
		Rental:      handlers.NewRentalHandler(log, services.Rental),
		Invoice:     handlers.NewInvoiceHandler(log, repos.Billing),
	}
}
