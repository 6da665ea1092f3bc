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

type LoyaltyHandler struct {
	service service.LoyaltyService
	log     *logger.Logger
}

func NewLoyaltyHandler(service service.LoyaltyService, log *logger.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{service: service, log: log}
}

// @Summary Get my loyalty balance
// @Tags Loyalty
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.LoyaltyBalanceResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /loyalty/balance [get]
func (h *LoyaltyHandler) GetMyBalance(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())

	resp, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to get loyalty balance", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List my loyalty transactions
// @Tags Loyalty
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListLoyaltyTransactionsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /loyalty/transactions [get]
func (h *LoyaltyHandler) ListMyTransactions(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	limit, offset := pagination(c)

	resp, err := h.service.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.log.Errorw("failed to list loyalty transactions", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Adjust a member's loyalty points
// @Description Credit or debit points outside the normal purchase flows
// @Tags Loyalty
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param request body dto.AdjustLoyaltyPointsRequest true "Adjustment"
// @Success 200 {object} dto.LoyaltyBalanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/loyalty [post]
func (h *LoyaltyHandler) AdjustPoints(c *gin.Context) {
	userID := c.Param("id")
	var req dto.AdjustLoyaltyPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Type {
	case types.LoyaltyTransactionTypeEarned:
		err = h.service.Credit(ctx, userID, req.Points, types.LoyaltySourceAdminAdjustment, "")
	case types.LoyaltyTransactionTypeRedeemed:
		err = h.service.Debit(ctx, userID, req.Points, types.LoyaltySourceAdminAdjustment, "")
	}
	if err != nil {
		h.log.Errorw("failed to adjust loyalty points", "user_id", userID, "error", err)
		c.Error(err)
		return
	}

	resp, err := h.service.GetBalance(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
