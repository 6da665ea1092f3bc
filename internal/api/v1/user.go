package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
)

// UserHandler exposes the admin side of account management. Self-service
// lives on AuthHandler.
type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// @Summary List users
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	resp, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Errorw("failed to list users", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a user by ID
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("User ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a user
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("User ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Errorw("failed to delete user", "user_id", id, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
