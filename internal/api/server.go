package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wazp-annotator/internal/api/handlers"
	"wazp-annotator/internal/config"
	"wazp-annotator/internal/services"
)

type Server struct {
	config   *config.Config
	services *services.ServiceContainer
	router   *gin.Engine
	server   *http.Server

	healthHandler  *handlers.HealthHandler
	systemHandler  *handlers.SystemHandler
	sessionHandler *handlers.SessionHandler
	videoHandler   *handlers.VideoHandler
	roiHandler     *handlers.ROIHandler
}

func NewServer(cfg *config.Config, sc *services.ServiceContainer) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	return &Server{
		config:         cfg,
		services:       sc,
		router:         router,
		healthHandler:  handlers.NewHealthHandler(cfg.InstanceID, cfg.Version),
		systemHandler:  handlers.NewSystemHandler(cfg.InstanceID, sc.Sessions),
		sessionHandler: handlers.NewSessionHandler(sc.Sessions),
		videoHandler:   handlers.NewVideoHandler(),
		roiHandler:     handlers.NewROIHandler(),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting WAZP annotator API")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Stopping WAZP annotator API")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return s.services.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
