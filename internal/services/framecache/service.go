package framecache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
)

var ErrFrameExtraction = errors.New("frame extraction failed")

// Extractor decodes single frames from video files.
type Extractor interface {
	// ExtractFrame decodes frame frameIndex of videoPath and writes it as an image to outPath.
	ExtractFrame(ctx context.Context, videoPath string, frameIndex int, outPath string) error
	// FrameCount returns the number of frames in the video.
	FrameCount(ctx context.Context, videoPath string) (int, error)
}

// Service extracts video frames on demand and keeps them on disk until
// they are older than the retention window.
type Service struct {
	dir       string
	suffix    string
	retention time.Duration
	extractor Extractor
	group     singleflight.Group
	logger    zerolog.Logger

	now func() time.Time
}

func NewService(cfg *config.Config, extractor Extractor) (*Service, error) {
	if err := os.MkdirAll(cfg.FrameCacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame cache dir: %w", err)
	}

	suffix := cfg.FrameImageSuffix
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}

	s := &Service{
		dir:       cfg.FrameCacheDir,
		suffix:    suffix,
		retention: cfg.FrameCacheRetention(),
		extractor: extractor,
		logger:    logging.NewServiceLogger(cfg, "framecache"),
		now:       time.Now,
	}

	s.logger.Info().
		Str("dir", s.dir).
		Dur("retention", s.retention).
		Msg("Frame cache initialized")
	return s, nil
}

// Dir returns the cache directory.
func (s *Service) Dir() string {
	return s.dir
}

// FramePath returns the deterministic cache location of a frame.
func (s *Service) FramePath(videoPath string, frameIndex int) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.dir, fmt.Sprintf("%s_frame-%d%s", stem, frameIndex, s.suffix))
}

// GetFrame returns the path of the cached image of a frame, extracting it
// from the video first when it is not cached yet. Every call sweeps stale
// frames before the lookup, and a cache hit refreshes the frame's mtime.
func (s *Service) GetFrame(ctx context.Context, videoPath string, frameIndex int) (string, error) {
	s.Sweep()

	if frameIndex < 0 {
		return "", fmt.Errorf("%w: %s: negative frame index %d", ErrFrameExtraction, videoPath, frameIndex)
	}

	path := s.FramePath(videoPath, frameIndex)
	if s.touch(path) {
		s.logger.Debug().Str("frame_path", path).Msg("Frame cache hit")
		return path, nil
	}

	// Concurrent requests for the same frame share one extraction, which
	// outlives the request that started it
	extractCtx := context.WithoutCancel(ctx)
	_, err, _ := s.group.Do(path, func() (any, error) {
		if s.touch(path) {
			return nil, nil
		}
		partial := filepath.Join(s.dir, ".partial-"+filepath.Base(path))
		if err := s.extractor.ExtractFrame(extractCtx, videoPath, frameIndex, partial); err != nil {
			_ = os.Remove(partial)
			return nil, err
		}
		if err := os.Rename(partial, path); err != nil {
			_ = os.Remove(partial)
			return nil, fmt.Errorf("rename partial frame: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("video", videoPath).
			Int("frame", frameIndex).
			Msg("Failed to extract frame")
		return "", fmt.Errorf("%w: %s frame %d: %w", ErrFrameExtraction, videoPath, frameIndex, err)
	}

	s.logger.Debug().Str("frame_path", path).Msg("Frame extracted")
	return path, nil
}

// touch reports whether a frame is cached and restarts its retention window.
func (s *Service) touch(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	now := s.now()
	if err := os.Chtimes(path, now, now); err != nil {
		s.logger.Warn().Err(err).Str("frame_path", path).Msg("Failed to refresh cached frame")
	}
	return true
}

// FrameCount probes the number of frames of a video.
func (s *Service) FrameCount(ctx context.Context, videoPath string) (int, error) {
	n, err := s.extractor.FrameCount(ctx, videoPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrFrameExtraction, videoPath, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s: no frames", ErrFrameExtraction, videoPath)
	}
	return n, nil
}

// Sweep removes cached frames whose modification time is older than the
// retention window. It returns the number of removed files.
func (s *Service) Sweep() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list frame cache")
		return 0
	}

	cutoff := s.now().Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn().Err(err).Str("frame_path", path).Msg("Failed to remove stale frame")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info().Int("removed_frames", removed).Msg("Cleaned up stale cached frames")
	}
	return removed
}
