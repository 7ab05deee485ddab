package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProject(t *testing.T) {
	path := writeProject(t, `videos_dir_path: videos
pose_estimation_results_path: /data/pose
ROI_tags:
  - feeder
  - nest
`)
	p, err := LoadProject(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(path), "videos"), p.VideosDirPath)
	require.Equal(t, "/data/pose", p.PoseEstimationResultsPath)
	require.Equal(t, []string{"feeder", "nest"}, p.ROITags)
}

func TestLoadProjectInvalid(t *testing.T) {
	tests := map[string]string{
		"no videos dir": "ROI_tags: [feeder]\n",
		"no tags":       "videos_dir_path: /videos\n",
		"empty tag":     "videos_dir_path: /videos\nROI_tags: [feeder, '']\n",
		"duplicate tag": "videos_dir_path: /videos\nROI_tags: [feeder, feeder]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProject(writeProject(t, content))
			require.ErrorIs(t, err, ErrInvalidProject)
		})
	}

	_, err := LoadProject(writeProject(t, "videos_dir_path: [\n"))
	require.Error(t, err)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_VIDEO_EXTENSIONS", " .mov, ,.mkv")
	require.Equal(t, []string{".mov", ".mkv"}, getEnvList("TEST_VIDEO_EXTENSIONS", nil))
	require.Equal(t, []string{".avi"}, getEnvList("TEST_UNSET_LIST", []string{".avi"}))
}
