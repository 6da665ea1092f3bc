package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
)

// SubscriptionCronHandler handles subscription related cron jobs
type SubscriptionCronHandler struct {
	subscriptionService service.SubscriptionService
	logger              *logger.Logger
}

// NewSubscriptionCronHandler creates a new subscription cron handler
func NewSubscriptionCronHandler(
	subscriptionService service.SubscriptionService,
	logger *logger.Logger,
) *SubscriptionCronHandler {
	return &SubscriptionCronHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// SweepExpired expires every active subscription past its end date.
func (h *SubscriptionCronHandler) SweepExpired(c *gin.Context) {
	h.logger.Infow("starting subscription sweep cron job", "time", time.Now().UTC().Format(time.RFC3339))

	expired, err := h.subscriptionService.SweepExpired(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to sweep expired subscriptions", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed subscription sweep cron job", "expired", expired)
	c.JSON(http.StatusOK, dto.SweepResponse{Expired: expired})
}
