package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// @Summary Dashboard headline stats
// @Description Counts, weekly deltas, revenue per currency, and loyalty totals
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to get dashboard stats", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Monthly revenue and volume trends
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param months query int false "Number of months (default 6, max 36)"
// @Success 200 {object} dto.MonthlyTrendsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /admin/dashboard/trends [get]
func (h *DashboardHandler) GetMonthlyTrends(c *gin.Context) {
	months, _ := strconv.Atoi(c.Query("months"))

	req := dto.MonthlyTrendsRequest{Months: months}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetMonthlyTrends(c.Request.Context(), req.Months)
	if err != nil {
		h.log.Errorw("failed to get monthly trends", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Top selling plans, programmes, and products
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Rows per section (default 5)"
// @Success 200 {object} dto.TopSellingResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/top-selling [get]
func (h *DashboardHandler) GetTopSelling(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.service.GetTopSelling(c.Request.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to get top selling", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Subscription status breakdown with revenue
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SubscriptionStatsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/subscriptions [get]
func (h *DashboardHandler) GetSubscriptionStats(c *gin.Context) {
	resp, err := h.service.GetSubscriptionStats(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to get subscription stats", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Export subscriptions as CSV
// @Tags Dashboard
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/export/subscriptions [get]
func (h *DashboardHandler) ExportSubscriptions(c *gin.Context) {
	data, err := h.service.ExportSubscriptionsCSV(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to export subscriptions", "error", err)
		c.Error(err)
		return
	}

	writeCSV(c, "subscriptions", data)
}

// @Summary Export orders as CSV
// @Tags Dashboard
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/export/orders [get]
func (h *DashboardHandler) ExportOrders(c *gin.Context) {
	data, err := h.service.ExportOrdersCSV(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to export orders", "error", err)
		c.Error(err)
		return
	}

	writeCSV(c, "orders", data)
}

// @Summary Export leads as CSV
// @Tags Dashboard
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/dashboard/export/leads [get]
func (h *DashboardHandler) ExportLeads(c *gin.Context) {
	data, err := h.service.ExportLeadsCSV(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to export leads", "error", err)
		c.Error(err)
		return
	}

	writeCSV(c, "leads", data)
}

func writeCSV(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
