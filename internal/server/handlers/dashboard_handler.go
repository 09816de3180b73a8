package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/ingest"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
	"github.com/mamadbah2/poultrydash/internal/service/dashboard"
)

// DashboardService is the read side the HTTP layer exposes.
type DashboardService interface {
	ActiveDashboard(ctx context.Context) (dashboard.View, error)
	BatchDashboard(ctx context.Context, batchID string) (dashboard.View, error)
	Forecast(ctx context.Context, batchID string) (models.Forecast, error)
	History(ctx context.Context, all bool) ([]analytics.HistoryPoint, error)
	Stats(ctx context.Context, batchID string) (analytics.Stats, error)
}

// DashboardHandler serves dashboard views over HTTP.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Active returns the view of the running batch.
func (h *DashboardHandler) Active(c *gin.Context) {
	view, err := h.svc.ActiveDashboard(c.Request.Context())
	if err != nil {
		h.fail(c, "active dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Batch returns the view of the batch named in the path.
func (h *DashboardHandler) Batch(c *gin.Context) {
	view, err := h.svc.BatchDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "batch dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Forecast returns the feed forecast of a batch.
func (h *DashboardHandler) Forecast(c *gin.Context) {
	fc, err := h.svc.Forecast(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "forecast", err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// History returns the cross-batch comparison. ?all=true lifts the window.
func (h *DashboardHandler) History(c *gin.Context) {
	all := false
	if raw := c.Query("all"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all must be a boolean"})
			return
		}
		all = v
	}

	points, err := h.svc.History(c.Request.Context(), all)
	if err != nil {
		h.fail(c, "history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": points})
}

// Stats returns aggregate batch figures. ?batch=<id> narrows to one batch.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("batch"))
	if err != nil {
		h.fail(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type usageInput struct {
	Date         string   `json:"date"`
	Quantity     float64  `json:"quantity"`
	PricePerUnit *float64 `json:"pricePerUnit"`
}

// ReconcileRequest carries the inputs of a stateless reconciliation.
type ReconcileRequest struct {
	Day      int                    `json:"day"`
	Today    string                 `json:"today" binding:"required"`
	Forecast []models.ForecastEntry `json:"forecast"`
	Usage    []usageInput           `json:"usage"`
}

// Reconcile compares a supplied forecast against supplied usage for a day.
func (h *DashboardHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reconcile payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	today := ingest.Date(req.Today)
	if today.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "today must be a YYYY-MM-DD date"})
		return
	}

	usage := make([]models.UsageLogEntry, 0, len(req.Usage))
	for _, u := range req.Usage {
		price := u.PricePerUnit
		if price != nil && *price < 0 {
			price = nil
		}
		usage = append(usage, models.UsageLogEntry{
			Date:         ingest.Date(u.Date),
			Quantity:     max(0, u.Quantity),
			PricePerUnit: price,
		})
	}

	c.JSON(http.StatusOK, analytics.Reconcile(req.Day, req.Forecast, usage, today))
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

func (h *DashboardHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrBatchNotFound.Error()})
	case errors.Is(err, dashboard.ErrForecastUnavailable):
		h.logger.Warn(op+" failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": dashboard.ErrForecastUnavailable.Error()})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
