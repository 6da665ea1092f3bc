package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
	"github.com/gymmawy/gymmawy/internal/types"
)

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

// @Summary Place an order
// @Description Create an order with its payment record
// @Tags Orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param order body dto.CreateOrderRequest true "Order lines and payment details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.log.Errorw("failed to create order", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List my orders
// @Tags Orders
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.OrderFilter false "Filter"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var filter types.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.ListUserOrders(c.Request.Context(), userID, &filter)
	if err != nil {
		h.log.Errorw("failed to list orders", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an order by ID
// @Tags Orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	// Members may only read their own orders.
	ctx := c.Request.Context()
	if types.GetUserRole(ctx) != types.UserRoleAdmin && resp.UserID != types.GetUserID(ctx) {
		c.Error(ierr.NewError("order not found").
			WithHintf("Order with ID %s was not found", id).
			Mark(ierr.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List all orders
// @Tags Orders
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.OrderFilter false "Filter"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter types.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListOrders(c.Request.Context(), &filter)
	if err != nil {
		h.log.Errorw("failed to list orders", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an order's status
// @Tags Orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateOrderStatus(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to update order status", "order_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
