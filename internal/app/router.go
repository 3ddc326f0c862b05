package app

import (
	"github.com/gin-gonic/gin"

	"github.com/reelstack/dvdrental-backend/internal/http/middleware"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.CORS(cfg.CORSConfigPath))

	r.GET("/healthz", h.Health.Check)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Browsing the catalog requires no account.
	api.GET("/dvds", h.Dvd.List)
	api.GET("/dvds/:id", h.Dvd.Get)
	api.GET("/genres", h.Genre.List)

	user := api.Group("", mw.Auth.RequireAuth())
	{
		user.POST("/reservations", h.Reservation.Create)
		user.GET("/reservations", h.Reservation.ListMine)
		user.POST("/reservations/:id/cancel", h.Reservation.Cancel)

		user.GET("/rentals", h.Rental.ListMine)
		user.POST("/rentals/:id/return", h.Rental.RequestReturn)

		user.GET("/invoices", h.Invoice.ListMine)
	}

	admin := api.Group("/admin", mw.Auth.RequireAuth(), mw.Auth.RequireAdmin())
	{
		admin.POST("/dvds", h.Dvd.Create)
		admin.PATCH("/dvds/:id", h.Dvd.Update)
		admin.POST("/dvds/:id/copies", h.Dvd.AddCopies)
		admin.DELETE("/dvds/:id", h.Dvd.Delete)
		admin.POST("/genres", h.Genre.Create)

		admin.GET("/reservations", h.Reservation.ListAll)
		admin.POST("/reservations/:id/accept", h.Reservation.Accept)
		admin.POST("/reservations/:id/decline", h.Reservation.Decline)

		admin.GET("/rentals/returns", h.Rental.ListReturnRequests)
		admin.POST("/rentals/:id/return/accept", h.Rental.AcceptReturn)
		admin.POST("/rentals/:id/return/decline", h.Rental.DeclineReturn)
		admin.POST("/rentals/sweep", h.Rental.Sweep)
		admin.GET("/rentals/:id/invoice", h.Invoice.GetForRental)
	}

	return r
}
