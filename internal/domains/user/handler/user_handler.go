package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filmorate-backend/internal/domains/user/model"
	"filmorate-backend/internal/domains/user/service"
	"filmorate-backend/internal/shared/response"
	"filmorate-backend/internal/shared/utils"
)

// UserHandler handles HTTP requests for the user domain
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(users))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.ToResponse())
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := req.ToEntity()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+strconv.FormatInt(created.ID, 10))
	response.Success(c, http.StatusCreated, created.ToResponse())
}

// UpdateUser handles PUT /users
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := req.ToEntity()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// AddFriend handles PUT /users/:id/friends/:friendId
func (h *UserHandler) AddFriend(c *gin.Context) {
	userID, friendID, ok := pathPair(c, "id", "friendId")
	if !ok {
		return
	}

	if err := h.service.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	userID, friendID, ok := pathPair(c, "id", "friendId")
	if !ok {
		return
	}

	if err := h.service.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Friends handles GET /users/:id/friends
func (h *UserHandler) Friends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.service.Friends(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(users))
}

// CommonFriends handles GET /users/:id/friends/common/:otherId
func (h *UserHandler) CommonFriends(c *gin.Context) {
	userID, otherID, ok := pathPair(c, "id", "otherId")
	if !ok {
		return
	}

	users, err := h.service.CommonFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(users))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		response.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

func pathPair(c *gin.Context, first, second string) (int64, int64, bool) {
	a, ok := pathID(c, first)
	if !ok {
		return 0, 0, false
	}
	b, ok := pathID(c, second)
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}
