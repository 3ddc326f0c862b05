package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	rentalrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/rental"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/http/middleware"
	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type InvoiceHandler struct {
	log     *logger.Logger
	billing rentalrepo.BillingRepo
}

func NewInvoiceHandler(baseLog *logger.Logger, billing rentalrepo.BillingRepo) *InvoiceHandler {
	return &InvoiceHandler{log: baseLog.With("handler", "invoice"), billing: billing}
}

func (h *InvoiceHandler) ListMine(c *gin.Context) {
	kind, err := billKindQuery(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	list, err := h.billing.ListByUser(c.Request.Context(), nil, middleware.UserIDFromContext(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	for _, rec := range list {
		rec.BillType = kind
	}
	response.RespondOK(c, list)
}

func (h *InvoiceHandler) GetForRental(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	kind, err := billKindQuery(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	record, err := h.billing.GetByRentalID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apierr.NotFound("no billing record for rental %s", id)
		}
		response.RespondAPIError(c, err)
		return
	}
	record.BillType = kind
	response.RespondOK(c, record)
}

// billKindQuery picks the presentation kind for the fetched records. The
// stored rows are always invoices; a receipt is the same record rendered as
// proof of payment.
func billKindQuery(c *gin.Context) (types.BillType, error) {
	raw := c.Query("kind")
	if raw == "" {
		return types.BillInvoice, nil
	}
	kind := types.BillType(raw)
	switch kind {
	case types.BillInvoice, types.BillReceipt:
		return kind, nil
	}
	return "", apierr.Validation("unknown bill kind %q", raw)
}
