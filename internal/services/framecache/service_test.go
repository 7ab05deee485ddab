package framecache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wazp-annotator/internal/config"
)

type fakeExtractor struct {
	calls  atomic.Int32
	frames int
	delay  time.Duration
}

func (f *fakeExtractor) ExtractFrame(ctx context.Context, videoPath string, frameIndex int, outPath string) error {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if err := ctx.Err(); err != nil {
		return err
	}
	if frameIndex >= f.frames {
		return errors.New("beyond end of stream")
	}
	return os.WriteFile(outPath, []byte{0x89, 0x50, 0x4E, 0x47}, 0o644)
}

func (f *fakeExtractor) FrameCount(ctx context.Context, videoPath string) (int, error) {
	return f.frames, nil
}

func newTestService(t *testing.T, ex Extractor) *Service {
	t.Helper()
	cfg := &config.Config{
		InstanceID:         "test",
		FrameCacheDir:      filepath.Join(t.TempDir(), "roi_frames"),
		FrameCacheKeepDays: 1,
		FrameImageSuffix:   "png",
	}
	s, err := NewService(cfg, ex)
	require.NoError(t, err)
	return s
}

func TestFramePath(t *testing.T) {
	s := newTestService(t, &fakeExtractor{})
	require.Equal(t, filepath.Join(s.Dir(), "cage1_frame-300.png"), s.FramePath("/data/videos/cage1.mp4", 300))
}

func TestGetFrameCachesResult(t *testing.T) {
	ex := &fakeExtractor{frames: 100}
	s := newTestService(t, ex)

	p1, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 10)
	require.NoError(t, err)
	require.FileExists(t, p1)

	p2, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 10)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
	require.Equal(t, int32(1), ex.calls.Load())
}

func TestGetFrameConcurrentSingleExtraction(t *testing.T) {
	ex := &fakeExtractor{frames: 100, delay: 50 * time.Millisecond}
	s := newTestService(t, ex)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 5)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), ex.calls.Load())
}

func TestGetFrameExtractionError(t *testing.T) {
	s := newTestService(t, &fakeExtractor{frames: 10})

	_, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 50)
	require.ErrorIs(t, err, ErrFrameExtraction)
	require.Contains(t, err.Error(), "/videos/v1.mp4")
	require.NoFileExists(t, s.FramePath("/videos/v1.mp4", 50))

	_, err = s.GetFrame(context.Background(), "/videos/v1.mp4", -1)
	require.ErrorIs(t, err, ErrFrameExtraction)
}

func TestGetFrameStaleHitIsReextracted(t *testing.T) {
	ex := &fakeExtractor{frames: 100}
	s := newTestService(t, ex)

	cached := s.FramePath("/videos/v1.mp4", 10)
	require.NoError(t, os.WriteFile(cached, []byte("old"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(cached, old, old))

	got, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 10)
	require.NoError(t, err)
	require.Equal(t, cached, got)
	require.FileExists(t, got)
	require.Equal(t, int32(1), ex.calls.Load())
}

func TestGetFrameHitRefreshesModTime(t *testing.T) {
	ex := &fakeExtractor{frames: 100}
	s := newTestService(t, ex)

	cached := s.FramePath("/videos/v1.mp4", 10)
	require.NoError(t, os.WriteFile(cached, []byte("x"), 0o644))
	aged := time.Now().Add(-20 * time.Hour)
	require.NoError(t, os.Chtimes(cached, aged, aged))

	got, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 10)
	require.NoError(t, err)
	require.Equal(t, int32(0), ex.calls.Load())

	info, err := os.Stat(got)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), info.ModTime(), time.Minute)
}

func TestGetFrameCancelledRequestStillExtracts(t *testing.T) {
	ex := &fakeExtractor{frames: 100}
	s := newTestService(t, ex)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := s.GetFrame(ctx, "/videos/v1.mp4", 3)
	require.NoError(t, err)
	require.FileExists(t, got)
}

func TestSweepRemovesStaleFrames(t *testing.T) {
	s := newTestService(t, &fakeExtractor{frames: 100})

	stale := filepath.Join(s.Dir(), "old_frame-1.png")
	fresh := filepath.Join(s.Dir(), "new_frame-1.png")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	old := time.Now().Add(-49 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	recent := time.Now().Add(-1 * time.Hour)
	require.NoError(t, os.Chtimes(fresh, recent, recent))

	// any cache access sweeps, including a failing one
	_, err := s.GetFrame(context.Background(), "/videos/v1.mp4", 1000)
	require.Error(t, err)

	require.NoFileExists(t, stale)
	require.FileExists(t, fresh)
}

func TestSweepCount(t *testing.T) {
	s := newTestService(t, &fakeExtractor{})
	now := time.Now()
	s.now = func() time.Time { return now.Add(72 * time.Hour) }

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "a_frame-0.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "b_frame-0.png"), []byte("x"), 0o644))
	require.Equal(t, 2, s.Sweep())
	require.Equal(t, 0, s.Sweep())
}

func TestFrameCount(t *testing.T) {
	s := newTestService(t, &fakeExtractor{frames: 42})
	n, err := s.FrameCount(context.Background(), "/videos/v1.mp4")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	empty := newTestService(t, &fakeExtractor{frames: 0})
	_, err = empty.FrameCount(context.Background(), "/videos/v1.mp4")
	require.ErrorIs(t, err, ErrFrameExtraction)
}
