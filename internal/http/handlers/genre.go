package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/http/response"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

type GenreHandler struct {
	log    *logger.Logger
	genres catalogrepo.GenreRepo
}

func NewGenreHandler(baseLog *logger.Logger, genres catalogrepo.GenreRepo) *GenreHandler {
	return &GenreHandler{log: baseLog.With("handler", "genre"), genres: genres}
}

func (h *GenreHandler) List(c *gin.Context) {
	list, err := h.genres.List(c.Request.Context(), nil)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, list)
}

type createGenresRequest struct {
	Names []string `json:"names"`
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in createGenresRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	genres := make([]*types.Genre, 0, len(in.Names))
	for _, name := range in.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			response.RespondAPIError(c, apierr.Validation("genre name must not be blank"))
			return
		}
		genres = append(genres, &types.Genre{Name: name})
	}
	if len(genres) == 0 {
		response.RespondAPIError(c, apierr.Validation("at least one genre name is required"))
		return
	}
	created, err := h.genres.Create(c.Request.Context(), nil, genres)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, created)
}
