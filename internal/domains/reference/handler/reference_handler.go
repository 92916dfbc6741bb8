package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmorate-backend/internal/domains/reference/service"
	"filmorate-backend/internal/shared/response"
	"filmorate-backend/internal/shared/utils"
)

// ReferenceHandler serves the read-only genre and MPA endpoints
type ReferenceHandler struct {
	service service.ServiceInterface
}

func NewReferenceHandler(service service.ServiceInterface) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// ListGenres handles GET /genres
func (h *ReferenceHandler) ListGenres(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Genres())
}

// GetGenre handles GET /genres/:id
func (h *ReferenceHandler) GetGenre(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	g, err := h.service.Genre(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// ListMpa handles GET /mpa
func (h *ReferenceHandler) ListMpa(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.MpaRatings())
}

// GetMpa handles GET /mpa/:id
func (h *ReferenceHandler) GetMpa(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.Mpa(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}
