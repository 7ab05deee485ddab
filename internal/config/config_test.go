package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrameCacheRetention(t *testing.T) {
	tests := []struct {
		days int
		want time.Duration
	}{
		{days: 1, want: 24 * time.Hour},
		{days: 3, want: 72 * time.Hour},
		{days: 0, want: 24 * time.Hour},
		{days: -2, want: 24 * time.Hour},
	}
	for _, tt := range tests {
		cfg := &Config{FrameCacheKeepDays: tt.days}
		require.Equal(t, tt.want, cfg.FrameCacheRetention(), "keep days %d", tt.days)
	}
}

func TestLoadClampsFrameCacheKeepDays(t *testing.T) {
	t.Setenv("FRAME_CACHE_KEEP_DAYS", "0")
	t.Setenv("FRAME_CACHE_DIR", t.TempDir())

	cfg := Load()
	require.Equal(t, 1, cfg.FrameCacheKeepDays)

	t.Setenv("FRAME_CACHE_KEEP_DAYS", "5")
	require.Equal(t, 5, Load().FrameCacheKeepDays)
}
