package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the API surface with origin-allowlist CORS. In
// development mode any origin is allowed.
func NewRouter(h *BriefingHandler, allowedOrigins []string, development bool) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if development {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/api/health", h.GetHealth)
	r.GET("/api/today", h.GetToday)
	r.GET("/api/date/:date", h.GetByDate)
	r.GET("/api/history", h.GetHistory)
	r.POST("/api/trigger", h.TriggerBriefing)

	return r
}
