package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// deleted is the body of every successful DELETE.
func deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
