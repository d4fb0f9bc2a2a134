package controllers

import (
	"net/http"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

func GetRecommendations(recSvc *services.RecService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		recs, err := recSvc.GetRecs(c.Request.Context(), userID, viewOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recommendations": recs})
	}
}
