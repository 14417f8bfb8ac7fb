// Package api wires the gin engine, middleware and routes of the portal.
package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tfgkk/schoolcomp/internal/api/handler"
	"github.com/tfgkk/schoolcomp/internal/config"
	"github.com/tfgkk/schoolcomp/internal/database"
)

// Server hosts the HTTP API.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
}

// New creates the API server. The handlers are built here, with explicit
// references to the store.
func New(cfg *config.Config, db database.DB) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	return &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
	}, nil
}

// setupCORS installs the blanket cross-origin policy. The frontend runs on
// a different origin and sends credentials, so the middleware echoes the
// request origin instead of using a wildcard.
func (s *Server) setupCORS() {
	if s.cfg.CORS == nil || !s.cfg.CORS.AllowAllOrigins {
		return
	}

	s.ginEngine.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: s.cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(s.cfg.CORS.MaxAgeSeconds) * time.Second,
	}))
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db)

	api := s.ginEngine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)

	competitions := api.Group("/competitions")
	competitions.GET("", h.ListCompetitions)
	competitions.POST("", h.CreateCompetition)
	competitions.DELETE("/:id", h.DeleteCompetition)

	registrations := api.Group("/registrations")
	registrations.GET("", h.ListRegistrations)
	registrations.POST("", h.CreateRegistration)
	registrations.PUT("/:id/audit", h.AuditRegistration)
	registrations.DELETE("/:id", h.DeleteRegistration)

	users := api.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("/import", h.ImportUsers)
	users.GET("/template", h.DownloadTemplate)
	users.DELETE("/:id", h.DeleteUser)
	users.PUT("/profile", h.UpdateProfile)
	users.PUT("/password", h.UpdatePassword)
	users.PUT("/student/update", h.UpdateStudentAccount)
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	s.setupCORS()
	s.setupRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}
