package controllers

import (
	"net/http"

	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

// ListNutrients serves the reference table in display order.
func ListNutrients(catalog *utils.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"nutrients": catalog.All()})
	}
}
