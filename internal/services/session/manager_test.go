package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/services/metadata"
	"wazp-annotator/internal/services/videos"
)

func TestManagerGetAndDelete(t *testing.T) {
	f := newFixture(t)

	got, err := f.mgr.Get(f.sess.ID)
	require.NoError(t, err)
	require.Same(t, f.sess, got)
	require.Equal(t, []string{f.sess.ID}, f.mgr.IDs())

	require.NoError(t, f.mgr.Delete(f.sess.ID))
	require.Equal(t, 0, f.mgr.Count())

	_, err = f.mgr.Get(f.sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.ErrorIs(t, f.mgr.Delete(f.sess.ID), ErrSessionNotFound)
}

func TestManagerCreateErrors(t *testing.T) {
	cfg := &config.Config{InstanceID: "test", VideoExtensions: []string{".mp4"}}
	m := NewManager(cfg, &fakeFrames{}, metadata.NewService(cfg), videos.NewCatalog(cfg), nil)

	_, err := m.Create("")
	require.ErrorIs(t, err, ErrNoProject)

	bad := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("videos_dir_path: /videos\nROI_tags: []\n"), 0o644))
	_, err = m.Create(bad)
	require.ErrorIs(t, err, config.ErrInvalidProject)

	_, err = m.Create(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestManagerCreateWithManyCategories(t *testing.T) {
	dir := t.TempDir()
	var tags []string
	for i := 0; i < 26; i++ {
		tags = append(tags, fmt.Sprintf("  - roi%02d", i))
	}
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("videos_dir_path: .\nROI_tags:\n"+strings.Join(tags, "\n")+"\n"), 0o644))

	cfg := &config.Config{InstanceID: "test", VideoExtensions: []string{".mp4"}}
	m := NewManager(cfg, &fakeFrames{}, metadata.NewService(cfg), videos.NewCatalog(cfg), nil)

	s, err := m.Create(path)
	require.NoError(t, err)
	require.Len(t, s.Categories(), 26)
	require.Equal(t, []string{"roi00", "roi01"}, s.Colors().Collisions())
}

func TestManagerSweep(t *testing.T) {
	f := newFixture(t)
	other, err := f.mgr.Create("")
	require.NoError(t, err)

	now := time.Now()
	f.mgr.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, err = f.mgr.Get(other.ID)
	require.NoError(t, err)

	f.mgr.now = func() time.Time { return now.Add(80 * time.Minute) }
	require.Equal(t, 1, f.mgr.Sweep())
	require.Equal(t, []string{other.ID}, f.mgr.IDs())
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	f.mgr.cfg.SessionSweepInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.mgr.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
