package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

type DvdHandler struct {
	log  *logger.Logger
	dvds services.DvdService
}

func NewDvdHandler(baseLog *logger.Logger, dvds services.DvdService) *DvdHandler {
	return &DvdHandler{log: baseLog.With("handler", "dvd"), dvds: dvds}
}

func (h *DvdHandler) List(c *gin.Context) {
	dvds, err := h.dvds.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, dvds)
}

func (h *DvdHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	dvd, err := h.dvds.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, dvd)
}

func (h *DvdHandler) Create(c *gin.Context) {
	var in services.CreateDvdInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	dvd, err := h.dvds.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, dvd)
}

func (h *DvdHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var in services.UpdateDvdInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if err := h.dvds.Update(c.Request.Context(), id, in); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"updated": true})
}

type addCopiesRequest struct {
	Count int `json:"count"`
}

func (h *DvdHandler) AddCopies(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var in addCopiesRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if err := h.dvds.AddCopies(c.Request.Context(), id, in.Count); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"added": in.Count})
}

func (h *DvdHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.dvds.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid %s: %v", name, err)
	}
	return id, nil
}
