package controllers

import (
	"net/http"
	"time"

	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

// MealController serves captured intake records.
type MealController struct {
	Records services.RecordStore
	Capture *services.CaptureService
	Loc     *time.Location
}

func NewMealController(records services.RecordStore, capture *services.CaptureService, loc *time.Location) *MealController {
	if loc == nil {
		loc = time.Local
	}
	return &MealController{Records: records, Capture: capture, Loc: loc}
}

type EstimateInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /meals/estimate
func (h *MealController) Estimate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body EstimateInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Capture.Capture(c.Request.Context(), userID, body.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /meals?from=YYYY-MM-DD&to=YYYY-MM-DD (to is inclusive)
func (h *MealController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	r, ok := rangeFromQuery(c, h.Loc)
	if !ok {
		return
	}

	recs, err := h.Records.ListByOwner(c.Request.Context(), userID, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": recs})
}

func (h *MealController) Get(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rec, err := h.Records.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *MealController) Confirm(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rec, err := h.Records.Confirm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *MealController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.Records.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// rangeFromQuery turns optional from/to dates into a half-open range
// covering whole days.
func rangeFromQuery(c *gin.Context, loc *time.Location) (services.TimeRange, bool) {
	var r services.TimeRange
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation(utils.DateLayout, v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return r, false
		}
		r.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation(utils.DateLayout, v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return r, false
		}
		end := t.AddDate(0, 0, 1)
		r.To = &end
	}
	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return r, false
	}
	return r, true
}
