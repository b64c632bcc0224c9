package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"complaint-backend/internal/aiclient"
	"complaint-backend/internal/config"
	"complaint-backend/internal/handler"
	"complaint-backend/internal/middleware"
	"complaint-backend/internal/repository"
	"complaint-backend/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	ai     *aiclient.Client
	logger *zap.Logger
	log    *logrus.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, ai *aiclient.Client, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		ai:     ai,
		logger: logger,
		log:    log,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.logger)
	complaintRepo := repository.NewComplaintRepository(s.db, s.logger)

	jwtSecret := []byte(s.cfg.Auth.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtSecret, s.cfg.TokenTTL(), s.logger)
	complaintService := service.NewComplaintService(complaintRepo, s.ai, s.cfg.AITimeout(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.log)
	complaintHandler := handler.NewComplaintHandler(complaintService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/username-available", authHandler.UsernameAvailable)
	authGroup.POST("/oauth/:provider", authHandler.MapOAuthIdentity)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(jwtSecret, s.logger))
	{
		authRequired.GET("/home", complaintHandler.Home)
		authRequired.POST("/complaints", complaintHandler.Submit)
		authRequired.GET("/complaints", complaintHandler.List)
		authRequired.GET("/complaints/recent", complaintHandler.Recent)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
