package middleware

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin outside production; production only admits allowedOrigins
func CORS(allowedOrigins []string, isProduction bool) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if !isProduction || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AddAllowHeaders("Authorization", RequestIDHeader)
	cfg.AddExposeHeaders("Content-Disposition")

	return cors.New(cfg)
}
