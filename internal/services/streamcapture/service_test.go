package streamcapture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wazp-annotator/internal/config"
)

func TestMissingVideo(t *testing.T) {
	s := NewService(&config.Config{InstanceID: "test"})
	missing := filepath.Join(t.TempDir(), "missing.mp4")

	_, err := s.FrameCount(context.Background(), missing)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = s.ExtractFrame(context.Background(), missing, 0, filepath.Join(t.TempDir(), "out.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCancelledContext(t *testing.T) {
	s := NewService(&config.Config{InstanceID: "test"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FrameCount(ctx, "/videos/v1.mp4")
	require.ErrorIs(t, err, context.Canceled)
}
