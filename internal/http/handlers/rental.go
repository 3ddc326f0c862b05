package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/http/middleware"
	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

type RentalHandler struct {
	log     *logger.Logger
	rentals services.RentalService
}

func NewRentalHandler(baseLog *logger.Logger, rentals services.RentalService) *RentalHandler {
	return &RentalHandler{log: baseLog.With("handler", "rental"), rentals: rentals}
}

func (h *RentalHandler) ListMine(c *gin.Context) {
	status, err := rentalStatusQuery(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	list, err := h.rentals.ListForUser(c.Request.Context(), middleware.UserIDFromContext(c), status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (h *RentalHandler) RequestReturn(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.rentals.RequestReturn(c.Request.Context(), id, middleware.UserIDFromContext(c)); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"return_requested": true})
}

func (h *RentalHandler) ListReturnRequests(c *gin.Context) {
	list, err := h.rentals.ListReturnRequests(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// AcceptReturn closes the rental and responds with the generated bill.
func (h *RentalHandler) AcceptReturn(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	bill, err := h.rentals.AcceptReturn(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, bill)
}

func (h *RentalHandler) DeclineReturn(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.rentals.DeclineReturn(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"declined": true})
}

// Sweep triggers an immediate expiry pass, outside the background schedule.
func (h *RentalHandler) Sweep(c *gin.Context) {
	result, err := h.rentals.SweepExpired(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func rentalStatusQuery(c *gin.Context) (*types.RentalStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status := types.RentalStatus(raw)
	switch status {
	case types.RentalActive, types.RentalReturnRequested, types.RentalInactive:
		return &status, nil
	}
	return nil, apierr.Validation("unknown status %q", raw)
}
