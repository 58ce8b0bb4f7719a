package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velopay/wallet_app/internal/apperrors"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/middleware"
)

// dashboardHandler serves read-only dashboard aggregates.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := &dashboardHandler{reportingService: rs}
	rg.GET("/dashboard/stats", h.getStats)
}

// getStats returns the caller's balance and today's transfer count.
func (h *dashboardHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account id not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.reportingService.DashboardStats(c.Request.Context(), accountID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to load dashboard stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
