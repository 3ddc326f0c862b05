package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, auth services.AuthService) *AuthHandler {
	return &AuthHandler{log: baseLog.With("handler", "auth"), auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	user, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
