package controller

import (
	"net/http"

	"give-hub/common/config"

	"github.com/gin-gonic/gin"
)

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.Version,
	})
}
