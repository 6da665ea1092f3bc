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

type CouponHandler struct {
	service service.CouponService
	log     *logger.Logger
}

func NewCouponHandler(service service.CouponService, log *logger.Logger) *CouponHandler {
	return &CouponHandler{service: service, log: log}
}

// @Summary Create a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param coupon body dto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /admin/coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to create coupon", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a coupon by ID
// @Tags Coupons
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Coupon ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List coupons
// @Tags Coupons
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.CouponFilter false "Filter"
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	var filter types.CouponFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListCoupons(c.Request.Context(), &filter)
	if err != nil {
		h.log.Errorw("failed to list coupons", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Param coupon body dto.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/coupons/{id} [patch]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to update coupon", "coupon_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a coupon
// @Tags Coupons
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteCoupon(c.Request.Context(), id); err != nil {
		h.log.Errorw("failed to delete coupon", "coupon_id", id, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Validate a coupon code
// @Description Price the discount for the current user without consuming a redemption
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ValidateCouponRequest true "Code and price"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.ValidateCoupon(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
