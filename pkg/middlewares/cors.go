package middleware

import (
	"net/http"
	"time"

	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns Gin middleware allowing the configured client origin. An empty
// or "*" origin allows all origins (development setups).
func CORS(clientOrigin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", pkg.HeaderTraceId},
		ExposeHeaders: []string{pkg.HeaderTraceId},
		MaxAge:        12 * time.Hour,
	}
	if utils.IsEmpty(clientOrigin) || clientOrigin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{clientOrigin}
	}
	return cors.New(cfg)
}
