package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	rentalrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/rental"
	userrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/user"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type Repos struct {
	Dvd         catalogrepo.DvdRepo
	Genre       catalogrepo.GenreRepo
	User        userrepo.UserRepo
	Reservation rentalrepo.ReservationRepo
	Rental      rentalrepo.RentalRepo
	Billing     rentalrepo.BillingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Dvd:         catalogrepo.NewDvdRepo(db, log),
		Genre:       catalogrepo.NewGenreRepo(db, log),
		User:        userrepo.NewUserRepo(db, log),
		Reservation: rentalrepo.NewReservationRepo(db, log),
		Rental:      rentalrepo.NewRentalRepo(db, log),
		Billing:     rentalrepo.NewBillingRepo(db, log),
	}
}
