package logging

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/logdyhq/logdy-core/logdy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wazp-annotator/internal/config"
)

// logdyWriter mirrors raw JSON log lines into the embedded Logdy viewer.
type logdyWriter struct {
	ld logdy.Logdy
}

func (w logdyWriter) Write(p []byte) (int, error) {
	w.ld.LogString(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// TeeLogdy starts the embedded Logdy viewer and returns a writer that sends
// every log line both to out and to the viewer.
func TeeLogdy(cfg *config.Config, out io.Writer) (zerolog.LevelWriter, error) {
	port := strconv.Itoa(cfg.LogdyPort)
	ld := logdy.InitializeLogdy(logdy.Config{
		ServerIp:   cfg.LogdyHost,
		ServerPort: port,
	}, nil)
	if ld == nil {
		return nil, fmt.Errorf("logdy did not start on %s", net.JoinHostPort(cfg.LogdyHost, port))
	}

	log.Info().
		Str("url", "http://"+net.JoinHostPort(cfg.LogdyHost, port)).
		Msg("Logdy log viewer started")
	return zerolog.MultiLevelWriter(out, logdyWriter{ld: ld}), nil
}
