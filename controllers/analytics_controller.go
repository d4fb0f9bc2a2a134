package controllers

import (
	"net/http"
	"time"

	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
	Loc *time.Location
}

func NewAnalyticsController(svc *services.AnalyticsService, loc *time.Location) *AnalyticsController {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsController{Svc: svc, Loc: loc}
}

func (h *AnalyticsController) GetAnalyticsSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now().In(h.Loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Loc)
	last := first.AddDate(0, 1, -1)

	from, ok := parseDay(c, "from", first, h.Loc)
	if !ok {
		return
	}
	to, ok := parseDay(c, "to", last, h.Loc)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) GetWeeklyOverview(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	weekStart, ok := parseDay(c, "week_start", utils.StartOfWeek(time.Now().In(h.Loc)), h.Loc)
	if !ok {
		return
	}
	mode := c.DefaultQuery("mode", "detailed")

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), userID, weekStart, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
