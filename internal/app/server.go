// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/detail"
	"mottars_backend/internal/draft"
	"mottars_backend/internal/filestorage"
	"mottars_backend/internal/jobs"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/middleware"
	"mottars_backend/internal/seller"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	viewSweeperJob *jobs.ViewSweeperJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionService session.Service,
	sessionHandler *session.Handler,
	listingHandler *listing.Handler,
	detailHandler *detail.Handler,
	verificationHandler *verification.Handler,
	draftHandler *draft.Handler,
	sellerHandler *seller.Handler,
	storage *filestorage.FileStorageService,
	viewSweeperJob *jobs.ViewSweeperJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, common.SessionIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader, common.SessionIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Mottars API is healthy!"})
	})

	// Uploaded draft photos are served back as previews unless a CDN fronts them.
	if strings.HasPrefix(cfg.ImagePublicBaseURL, "/") {
		router.Static(cfg.ImagePublicBaseURL, storage.StoragePath())
	}

	v1 := router.Group("/api/v1", middleware.SessionResolver(cfg, logger.Named("SessionResolver")))
	authMW := middleware.RequireAuth(sessionService, logger.Named("RequireAuth"))

	sessionHandler.RegisterRoutes(v1)
	listingHandler.RegisterRoutes(v1)
	detailHandler.RegisterRoutes(v1)
	verificationHandler.RegisterRoutes(v1, authMW)
	draftHandler.RegisterRoutes(v1, authMW)
	sellerHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		viewSweeperJob: viewSweeperJob,
	}, nil
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) Start() error {
	if s.viewSweeperJob != nil {
		if err := s.viewSweeperJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start view sweeper job", zap.Error(err))
		}
	} else {
		s.logger.Info("View sweeper job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.viewSweeperJob != nil {
		s.viewSweeperJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
