package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wazp-annotator/internal/config"
)

func NewServiceLogger(cfg *config.Config, service string) zerolog.Logger {
	return log.With().Str("instance_id", cfg.InstanceID).Str("service", service).Logger()
}

func WithSession(base zerolog.Logger, sessionID string) zerolog.Logger {
	return base.With().Str("session_id", sessionID).Logger()
}

func WithVideo(base zerolog.Logger, video string) zerolog.Logger {
	return base.With().Str("video", video).Logger()
}
