package streamcapture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
)

// maxReadAttempts bounds retries of a frame read right after seeking;
// some containers return an empty first read after a seek.
const maxReadAttempts = 3

// Service decodes frames from video files with OpenCV VideoCapture.
// It implements framecache.Extractor.
type Service struct {
	logger zerolog.Logger
}

// NewService creates a new video capture service
func NewService(cfg *config.Config) *Service {
	return &Service{
		logger: logging.NewServiceLogger(cfg, "streamcapture"),
	}
}

func (s *Service) open(ctx context.Context, videoPath string) (*gocv.VideoCapture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file: %w", err)
	}

	cap, err := gocv.OpenVideoCaptureWithAPI(videoPath, gocv.VideoCaptureFFmpeg)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", videoPath, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video capture is not opened for %s", videoPath)
	}
	return cap, nil
}

// FrameCount returns the frame count reported by the container.
func (s *Service) FrameCount(ctx context.Context, videoPath string) (int, error) {
	cap, err := s.open(ctx, videoPath)
	if err != nil {
		return 0, err
	}
	defer cap.Close()

	count := int(cap.Get(gocv.VideoCaptureFrameCount))

	s.logger.Debug().
		Str("video", videoPath).
		Int("frame_count", count).
		Float64("fps", cap.Get(gocv.VideoCaptureFPS)).
		Msg("Probed video")
	return count, nil
}

// ExtractFrame seeks to frameIndex, decodes one frame and writes it to
// outPath, encoded according to the file extension of outPath.
func (s *Service) ExtractFrame(ctx context.Context, videoPath string, frameIndex int, outPath string) error {
	cap, err := s.open(ctx, videoPath)
	if err != nil {
		return err
	}
	defer cap.Close()

	count := int(cap.Get(gocv.VideoCaptureFrameCount))
	if count > 0 && frameIndex >= count {
		return fmt.Errorf("frame %d is beyond the end of the stream (%d frames)", frameIndex, count)
	}

	cap.Set(gocv.VideoCapturePosFrames, float64(frameIndex))

	img := gocv.NewMat()
	defer img.Close()

	read := false
	for attempt := 1; attempt <= maxReadAttempts; attempt++ {
		if cap.Read(&img) && !img.Empty() {
			read = true
			break
		}
		s.logger.Debug().
			Str("video", videoPath).
			Int("frame", frameIndex).
			Int("attempt", attempt).
			Msg("Empty frame read after seek")
	}
	if !read {
		return fmt.Errorf("could not decode frame %d", frameIndex)
	}

	data, err := encodeFrame(img, filepath.Ext(outPath))
	if err != nil {
		return err
	}

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open frame file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write frame file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame file: %w", err)
	}

	s.logger.Info().
		Str("video", videoPath).
		Int("frame", frameIndex).
		Int("width", img.Cols()).
		Int("height", img.Rows()).
		Msg("Extracted frame")
	return nil
}
