package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/http/middleware"
	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

type ReservationHandler struct {
	log          *logger.Logger
	reservations services.ReservationService
}

func NewReservationHandler(baseLog *logger.Logger, reservations services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		log:          baseLog.With("handler", "reservation"),
		reservations: reservations,
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var in services.CreateReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	res, err := h.reservations.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// ListMine returns the caller's reservations, optionally filtered by
// ?status=PENDING etc.
func (h *ReservationHandler) ListMine(c *gin.Context) {
	status, err := reservationStatusQuery(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	list, err := h.reservations.ListForUser(c.Request.Context(), middleware.UserIDFromContext(c), status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (h *ReservationHandler) ListAll(c *gin.Context) {
	status, err := reservationStatusQuery(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	list, err := h.reservations.ListAll(c.Request.Context(), status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.reservations.Cancel(c.Request.Context(), id, middleware.UserIDFromContext(c)); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cancelled": true})
}

func (h *ReservationHandler) Accept(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	rental, err := h.reservations.Accept(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, rental)
}

func (h *ReservationHandler) Decline(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.reservations.Decline(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"declined": true})
}

func reservationStatusQuery(c *gin.Context) (*types.ReservationStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status := types.ReservationStatus(raw)
	switch status {
	case types.ReservationPending, types.ReservationAccepted,
		types.ReservationRejected, types.ReservationCancelled:
		return &status, nil
	}
	return nil, apierr.Validation("unknown status %q", raw)
}
