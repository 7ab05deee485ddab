package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/services/framecache"
	"wazp-annotator/internal/services/messaging"
	"wazp-annotator/internal/services/metadata"
	"wazp-annotator/internal/services/session"
	"wazp-annotator/internal/services/streamcapture"
	"wazp-annotator/internal/services/videos"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config    *config.Config
	Capture   *streamcapture.Service
	Frames    *framecache.Service
	Metadata  *metadata.Service
	Videos    *videos.Catalog
	Messaging *messaging.Service
	Sessions  *session.Manager
}

// NewServiceContainer creates a new service container
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	capture := streamcapture.NewService(cfg)

	frames, err := framecache.NewService(cfg, capture)
	if err != nil {
		return nil, err
	}

	sc := &ServiceContainer{
		Config:   cfg,
		Capture:  capture,
		Frames:   frames,
		Metadata: metadata.NewService(cfg),
		Videos:   videos.NewCatalog(cfg),
	}

	// ROI save notifications are optional; the service runs without NATS
	var notifier session.Notifier
	if cfg.NatsEnabled {
		msg, err := messaging.NewService(cfg)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NatsURL).Msg("NATS unavailable, ROI save events disabled")
		} else {
			sc.Messaging = msg
			notifier = msg
		}
	}

	sc.Sessions = session.NewManager(cfg, frames, sc.Metadata, sc.Videos, notifier)
	return sc, nil
}

// Start runs background work until ctx is cancelled
func (sc *ServiceContainer) Start(ctx context.Context) {
	go sc.Sessions.Run(ctx)
	sc.Frames.Sweep()
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
