package controllers

import (
	"net/http"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Dash *services.DashboardService
}

func NewProgressController(dash *services.DashboardService) *ProgressController {
	return &ProgressController{Dash: dash}
}

// GET /progress/today
func (h *ProgressController) Today(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	out, err := h.Dash.Today(c.Request.Context(), userID, viewOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /progress?date=YYYY-MM-DD
func (h *ProgressController) Day(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := parseDay(c, "date", h.Dash.Now(), h.Dash.Location())
	if !ok {
		return
	}
	out, err := h.Dash.Day(c.Request.Context(), userID, date, viewOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /history?from&to
func (h *ProgressController) History(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	r, ok := rangeFromQuery(c, h.Dash.Location())
	if !ok {
		return
	}
	days, err := h.Dash.History(c.Request.Context(), userID, r, viewOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GET /nutrients/:name/progress?date
func (h *ProgressController) Nutrient(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := parseDay(c, "date", h.Dash.Now(), h.Dash.Location())
	if !ok {
		return
	}
	out, err := h.Dash.NutrientDetail(c.Request.Context(), userID, c.Param("name"), date, viewOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
