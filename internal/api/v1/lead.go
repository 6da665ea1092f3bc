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

type LeadHandler struct {
	service service.LeadService
	log     *logger.Logger
}

func NewLeadHandler(service service.LeadService, log *logger.Logger) *LeadHandler {
	return &LeadHandler{service: service, log: log}
}

// @Summary Submit a contact lead
// @Description Public endpoint for the contact form
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead body dto.CreateLeadRequest true "Contact details"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateLead(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to create lead", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List leads
// @Tags Leads
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.LeadFilter false "Filter"
// @Success 200 {object} dto.ListLeadsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	var filter types.LeadFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListLeads(c.Request.Context(), &filter)
	if err != nil {
		h.log.Errorw("failed to list leads", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a lead by ID
// @Tags Leads
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} dto.LeadResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Lead ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetLead(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a lead's status
// @Tags Leads
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lead ID"
// @Param request body dto.UpdateLeadStatusRequest true "New status"
// @Success 200 {object} dto.LeadResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/leads/{id}/status [patch]
func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateLeadStatus(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to update lead status", "lead_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a lead
// @Tags Leads
// @Security ApiKeyAuth
// @Param id path string true "Lead ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteLead(c.Request.Context(), id); err != nil {
		h.log.Errorw("failed to delete lead", "lead_id", id, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get lead statistics
// @Description Lead counts grouped by status
// @Tags Leads
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.LeadStatsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/leads/stats [get]
func (h *LeadHandler) GetLeadStats(c *gin.Context) {
	resp, err := h.service.GetLeadStats(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to get lead stats", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
