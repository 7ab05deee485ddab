package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/models"
	"wazp-annotator/internal/roi"
)

const (
	// FileSuffix replaces a video's extension to name its metadata file
	FileSuffix = ".metadata.yaml"
	ROIsKey    = "ROIs"
)

var (
	ErrMetadataNotFound  = errors.New("metadata file not found")
	ErrMissingROIs       = errors.New("metadata file has no ROIs field")
	ErrMalformedMetadata = errors.New("malformed metadata file")
)

// MetadataPath returns the metadata file that belongs to a video.
func MetadataPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + FileSuffix
}

// Service reads and writes the ROIs section of per-video metadata files.
type Service struct {
	logger zerolog.Logger
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		logger: logging.NewServiceLogger(cfg, "metadata"),
	}
}

// fileEntryDoc detects missing fields, which a plain struct would zero-fill
type fileEntryDoc struct {
	Name         *string `yaml:"name"`
	DrawnOnFrame *int    `yaml:"drawn_on_frame"`
	LineColor    *string `yaml:"line_color"`
	Path         *string `yaml:"path"`
}

func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrMetadataNotFound, path, err)
		}
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedMetadata, path, err)
	}
	if doc.Kind == 0 {
		// empty file
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top level is not a mapping", ErrMalformedMetadata, path)
	}
	return &doc, nil
}

// roisValue returns the value node of the ROIs key, or nil when absent.
func roisValue(doc *yaml.Node) *yaml.Node {
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == ROIsKey {
			return root.Content[i+1]
		}
	}
	return nil
}

// ReadEntries returns the ROIs entries of a metadata file.
func (s *Service) ReadEntries(path string) ([]models.FileEntry, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	node := roisValue(doc)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingROIs, path)
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return []models.FileEntry{}, nil
	}

	var docs []fileEntryDoc
	if err := node.Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: %s: ROIs: %w", ErrMalformedMetadata, path, err)
	}

	entries := make([]models.FileEntry, 0, len(docs))
	for i, d := range docs {
		e, err := d.entry()
		if err != nil {
			return nil, fmt.Errorf("%s: ROIs[%d]: %w", path, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (d fileEntryDoc) entry() (models.FileEntry, error) {
	missing := func(field string) error {
		return fmt.Errorf("%w: missing field %q", roi.ErrMalformedShape, field)
	}
	switch {
	case d.Name == nil:
		return models.FileEntry{}, missing("name")
	case d.DrawnOnFrame == nil:
		return models.FileEntry{}, missing("drawn_on_frame")
	case d.LineColor == nil:
		return models.FileEntry{}, missing("line_color")
	case d.Path == nil:
		return models.FileEntry{}, missing("path")
	}
	return models.FileEntry{
		Name:         *d.Name,
		DrawnOnFrame: *d.DrawnOnFrame,
		LineColor:    *d.LineColor,
		Path:         *d.Path,
	}, nil
}

// Load reads the ROIs of a metadata file as drawable shapes.
func (s *Service) Load(path string, colors roi.ColorMap) ([]models.Shape, error) {
	entries, err := s.ReadEntries(path)
	if err != nil {
		return nil, err
	}

	shapes := make([]models.Shape, 0, len(entries))
	for i, e := range entries {
		shape, err := roi.FileEntryToStorageShape(e, colors)
		if err != nil {
			return nil, fmt.Errorf("%s: ROIs[%d]: %w", path, i, err)
		}
		shapes = append(shapes, shape)
	}

	s.logger.Info().Str("metadata", path).Int("rois", len(shapes)).Msg("Loaded ROIs")
	return shapes, nil
}

// FileROIs reports the ROIs currently on disk for status checks. A missing
// ROIs field counts as no ROIs; a missing file is reported with exists=false.
func (s *Service) FileROIs(path string) (entries []models.FileEntry, exists bool, err error) {
	entries, err = s.ReadEntries(path)
	switch {
	case errors.Is(err, ErrMetadataNotFound):
		return nil, false, nil
	case errors.Is(err, ErrMissingROIs):
		return []models.FileEntry{}, true, nil
	case err != nil:
		return nil, true, err
	}
	return entries, true, nil
}

// Save replaces the ROIs field of an existing metadata file. All other
// top-level fields keep their values and order. It returns once the new
// content is flushed to disk.
func (s *Service) Save(path string, shapes []models.Shape) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	entries, err := roi.StorageShapesToFileEntries(shapes)
	if err != nil {
		return fmt.Errorf("encode ROIs for %s: %w", path, err)
	}

	var value yaml.Node
	if err := value.Encode(entries); err != nil {
		return fmt.Errorf("encode ROIs for %s: %w", path, err)
	}

	if existing := roisValue(doc); existing != nil {
		*existing = value
	} else {
		root := doc.Content[0]
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ROIsKey},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode metadata %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode metadata %s: %w", path, err)
	}

	if err := writeFileSync(path, buf.Bytes()); err != nil {
		return err
	}

	s.logger.Info().Str("metadata", path).Int("rois", len(entries)).Msg("Saved ROIs")
	return nil
}

// writeFileSync replaces path atomically and fsyncs both the file and its directory.
func writeFileSync(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("chmod tmp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync tmp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename tmp: %w", err)
	}

	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync dir: %w", err)
	}
	return nil
}
