package controllers

import (
	"errors"
	"net/http"
	"time"

	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	return id, id != ""
}

// parseDay reads a YYYY-MM-DD query value in loc, or returns def when absent.
func parseDay(c *gin.Context, key string, def time.Time, loc *time.Location) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	t, err := time.ParseInLocation(utils.DateLayout, v, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + " date"})
		return time.Time{}, false
	}
	return t, true
}

func viewOptions(c *gin.Context) services.ViewOptions {
	return services.ViewOptions{ConfirmedOnly: c.Query("confirmed_only") == "true"}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrUnknownNutrient),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidImage),
		errors.Is(err, services.ErrRangeTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEstimationUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
