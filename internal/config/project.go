package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is the per-project configuration a session works against.
type Project struct {
	VideosDirPath             string   `yaml:"videos_dir_path"`
	PoseEstimationResultsPath string   `yaml:"pose_estimation_results_path,omitempty"`
	MetadataFieldsFilePath    string   `yaml:"metadata_fields_file_path,omitempty"`
	ROITags                   []string `yaml:"ROI_tags"`
}

var ErrInvalidProject = errors.New("invalid project config")

// LoadProject reads and validates a project config YAML file.
// Relative directories are resolved against the config file's directory.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project config %s: %w", path, err)
	}

	if p.VideosDirPath == "" {
		return nil, fmt.Errorf("%w: videos_dir_path is required", ErrInvalidProject)
	}
	if len(p.ROITags) == 0 {
		return nil, fmt.Errorf("%w: ROI_tags must list at least one category", ErrInvalidProject)
	}
	seen := make(map[string]struct{}, len(p.ROITags))
	for _, tag := range p.ROITags {
		if tag == "" {
			return nil, fmt.Errorf("%w: empty ROI tag", ErrInvalidProject)
		}
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate ROI tag %q", ErrInvalidProject, tag)
		}
		seen[tag] = struct{}{}
	}

	if !filepath.IsAbs(p.VideosDirPath) {
		p.VideosDirPath = filepath.Join(filepath.Dir(path), p.VideosDirPath)
	}

	return &p, nil
}
