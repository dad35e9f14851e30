// Package server exposes the verification engine over HTTP for the
// newsroom editing UI
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/draftdesk/factcheck/internal/model"
)

// New builds the gin engine with all routes registered
func New(cfg model.ServerConfig, checker ReportChecker, source DocumentSource) *gin.Engine {
	r := gin.Default()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h := NewVerifyHandler(checker, source)

	r.POST("/api/check-numbers", h.CheckNumbers)
	r.GET("/health", h.GetHealth)

	return r
}
