package controllers

import (
	"net/http"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
	Dash    *services.DashboardService
}

func NewReportController(reports *services.ReportService, dash *services.DashboardService) *ReportController {
	return &ReportController{Reports: reports, Dash: dash}
}

// POST /reports/daily/email?date=YYYY-MM-DD
func (h *ReportController) EmailDaily(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := parseDay(c, "date", h.Dash.Now(), h.Dash.Location())
	if !ok {
		return
	}

	day, err := h.Reports.EmailDailyReport(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report sent", "date": day.Date})
}
