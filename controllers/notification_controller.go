package controllers

import (
	"net/http"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /user/notifications/toggle
func ToggleNotifications(push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userIDFromCtx(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req toggleReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if err := push.SetEnabled(c.Request.Context(), uid, req.Enabled); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "notifications updated",
			"enabled": req.Enabled,
		})
	}
}
