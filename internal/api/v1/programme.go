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

type ProgrammeHandler struct {
	service service.ProgrammeService
	log     *logger.Logger
}

func NewProgrammeHandler(service service.ProgrammeService, log *logger.Logger) *ProgrammeHandler {
	return &ProgrammeHandler{service: service, log: log}
}

// @Summary Create a training programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param programme body dto.CreateProgrammeRequest true "Programme definition"
// @Success 201 {object} dto.ProgrammeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/programmes [post]
func (h *ProgrammeHandler) CreateProgramme(c *gin.Context) {
	var req dto.CreateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateProgramme(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to create programme", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a programme by ID
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} dto.ProgrammeResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /programmes/{id} [get]
func (h *ProgrammeHandler) GetProgramme(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Programme ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetProgramme(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List programmes
// @Tags Programmes
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListProgrammesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /programmes [get]
func (h *ProgrammeHandler) ListProgrammes(c *gin.Context) {
	limit, offset := pagination(c)

	resp, err := h.service.ListProgrammes(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Errorw("failed to list programmes", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Programme ID"
// @Param programme body dto.UpdateProgrammeRequest true "Fields to update"
// @Success 200 {object} dto.ProgrammeResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/programmes/{id} [patch]
func (h *ProgrammeHandler) UpdateProgramme(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateProgramme(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to update programme", "programme_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a programme
// @Tags Programmes
// @Security ApiKeyAuth
// @Param id path string true "Programme ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/programmes/{id} [delete]
func (h *ProgrammeHandler) DeleteProgramme(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteProgramme(c.Request.Context(), id); err != nil {
		h.log.Errorw("failed to delete programme", "programme_id", id, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reorder programmes
// @Tags Programmes
// @Accept json
// @Security ApiKeyAuth
// @Param request body dto.ReorderPlansRequest true "Programme positions"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/programmes/reorder [post]
func (h *ProgrammeHandler) ReorderProgrammes(c *gin.Context) {
	var req dto.ReorderPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ReorderProgrammes(c.Request.Context(), req); err != nil {
		h.log.Errorw("failed to reorder programmes", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Upsert a programme price
// @Tags Programmes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Programme ID"
// @Param price body dto.UpsertProgrammePriceRequest true "Price row"
// @Success 200 {object} dto.ProgrammeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/programmes/{id}/prices [put]
func (h *ProgrammeHandler) UpsertProgrammePrice(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpsertProgrammePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertProgrammePrice(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorw("failed to upsert programme price", "programme_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Purchase a programme
// @Description Create a programme purchase with its payment record
// @Tags Programmes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Programme ID"
// @Param request body dto.PurchaseProgrammeRequest true "Purchase details"
// @Success 201 {object} dto.ProgrammePurchaseResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /programmes/{id}/purchase [post]
func (h *ProgrammeHandler) PurchaseProgramme(c *gin.Context) {
	id := c.Param("id")
	var req dto.PurchaseProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.PurchaseProgramme(c.Request.Context(), userID, id, req)
	if err != nil {
		h.log.Errorw("failed to purchase programme", "programme_id", id, "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List my programme purchases
// @Tags Programmes
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListProgrammePurchasesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /programmes/purchases [get]
func (h *ProgrammeHandler) ListMyPurchases(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	limit, offset := pagination(c)

	resp, err := h.service.ListUserPurchases(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.log.Errorw("failed to list programme purchases", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
