package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
	"github.com/gymmawy/gymmawy/internal/types"
)

type PlanHandler struct {
	service      service.PlanService
	priceService service.PriceService
	log          *logger.Logger
}

func NewPlanHandler(service service.PlanService, priceService service.PriceService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{service: service, priceService: priceService, log: log}
}

// @Summary Create a membership plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param plan body dto.CreatePlanRequest true "Plan definition"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePlan(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to create plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a plan by ID
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Plan ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPlan(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List plans
// @Tags Plans
// @Produce json
// @Param filter query types.PlanFilter false "Filter"
// @Success 200 {object} dto.ListPlansResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	var filter types.PlanFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListPlans(c.Request.Context(), &filter)
	if err != nil {
		h.log.Errorw("failed to list plans", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Param plan body dto.UpdatePlanRequest true "Fields to update"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/plans/{id} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to update plan", "plan_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a plan
// @Tags Plans
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeletePlan(c.Request.Context(), id); err != nil {
		h.log.Errorw("failed to delete plan", "plan_id", id, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reorder plans
// @Description Set the display position of each listed plan
// @Tags Plans
// @Accept json
// @Security ApiKeyAuth
// @Param request body dto.ReorderPlansRequest true "Plan positions"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/plans/reorder [post]
func (h *PlanHandler) ReorderPlans(c *gin.Context) {
	var req dto.ReorderPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ReorderPlans(c.Request.Context(), req); err != nil {
		h.log.Errorw("failed to reorder plans", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Upsert a plan price
// @Description Create or replace the price row for one currency and purchase type
// @Tags Plans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Param price body dto.UpsertPlanPriceRequest true "Price row"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/plans/{id}/prices [put]
func (h *PlanHandler) UpsertPlanPrice(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpsertPlanPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertPlanPrice(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to upsert plan price", "plan_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a plan price
// @Tags Plans
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Param price_id path string true "Price ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/plans/{id}/prices/{price_id} [delete]
func (h *PlanHandler) DeletePlanPrice(c *gin.Context) {
	id := c.Param("id")
	priceID := c.Param("price_id")

	if err := h.service.DeletePlanPrice(c.Request.Context(), id, priceID); err != nil {
		h.log.Errorw("failed to delete plan price", "plan_id", id, "price_id", priceID, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Resolve a plan's effective price
// @Description Price for the detected (or requested) currency with the plan discount applied
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param currency query string false "Currency code"
// @Param medical query bool false "Medical membership pricing"
// @Success 200 {object} dto.ResolvedPrice
// @Failure 400 {object} ierr.ErrorResponse
// @Router /plans/{id}/price [get]
func (h *PlanHandler) ResolvePrice(c *gin.Context) {
	id := c.Param("id")
	currency := types.Currency(c.Query("currency"))
	isMedical, _ := strconv.ParseBool(c.Query("medical"))

	resp, err := h.priceService.ResolvePlanPrice(c.Request.Context(), id, currency, isMedical)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
