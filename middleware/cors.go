package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// CORS injects the externally configured allow-origin header on every
// response, including error responses.
func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()

	origin := viper.GetString("cors.allowed_origin")
	if origin == "" || origin == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = []string{origin}
	}

	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	return cors.New(config)
}
