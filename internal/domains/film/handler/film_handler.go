package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filmorate-backend/internal/domains/film/model"
	"filmorate-backend/internal/domains/film/service"
	"filmorate-backend/internal/shared/response"
	"filmorate-backend/internal/shared/utils"
)

// FilmHandler handles HTTP requests for the film domain
type FilmHandler struct {
	service service.ServiceInterface
}

func NewFilmHandler(service service.ServiceInterface) *FilmHandler {
	return &FilmHandler{service: service}
}

// ListFilms handles GET /films
func (h *FilmHandler) ListFilms(c *gin.Context) {
	films, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(films))
}

// GetFilm handles GET /films/:id
func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f.ToResponse())
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var req model.CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	f, err := req.ToEntity()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/films/"+strconv.FormatInt(created.ID, 10))
	response.Success(c, http.StatusCreated, created.ToResponse())
}

// UpdateFilm handles PUT /films
func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	var req model.UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	f, err := req.ToEntity()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// AddLike handles PUT /films/:id/like/:userId
func (h *FilmHandler) AddLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.AddLike(c.Request.Context(), filmID, userID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// RemoveLike handles DELETE /films/:id/like/:userId
func (h *FilmHandler) RemoveLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Popular handles GET /films/popular?count=N
func (h *FilmHandler) Popular(c *gin.Context) {
	count, err := utils.QueryInt(c.Query("count"), model.DefaultPopularLimit)
	if err != nil {
		response.BadRequest(c, "count: "+err.Error())
		return
	}

	films, err := h.service.Popular(c.Request.Context(), count)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(films))
}

// Likers handles GET /films/:id/likes
func (h *FilmHandler) Likers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ids, err := h.service.Likers(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ids)
}

// pathID writes a 400 and returns false when the parameter is not a positive integer
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		response.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}
