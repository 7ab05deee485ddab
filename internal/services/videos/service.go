package videos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
)

var ErrVideoNotFound = errors.New("video not found")

// Option is one entry of the video selector.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Catalog lists the videos of a project directory.
type Catalog struct {
	extensions map[string]struct{}
	logger     zerolog.Logger
}

func NewCatalog(cfg *config.Config) *Catalog {
	exts := make(map[string]struct{}, len(cfg.VideoExtensions))
	for _, ext := range cfg.VideoExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return &Catalog{
		extensions: exts,
		logger:     logging.NewServiceLogger(cfg, "videos"),
	}
}

// IsVideo reports whether the file name has one of the configured extensions.
func (c *Catalog) IsVideo(name string) bool {
	_, ok := c.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// List returns the video file names in dir, sorted.
func (c *Catalog) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list videos in %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !c.IsVideo(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	c.logger.Debug().Str("dir", dir).Int("videos", len(names)).Msg("Listed videos")
	return names, nil
}

// Options returns the selector entries for the videos in dir.
func (c *Catalog) Options(dir string) ([]Option, error) {
	names, err := c.List(dir)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, Option{Label: name, Value: name})
	}
	return opts, nil
}

// Resolve returns the full path of a video by file name. Names that are
// not plain file names or do not exist in dir are rejected.
func (c *Catalog) Resolve(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrVideoNotFound, name)
	}
	if !c.IsVideo(name) {
		return "", fmt.Errorf("%w: %q is not a video file", ErrVideoNotFound, name)
	}
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrVideoNotFound, path)
	}
	return path, nil
}
