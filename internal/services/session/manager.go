package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/models"
	"wazp-annotator/internal/roi"
	"wazp-annotator/internal/services/messaging"
	"wazp-annotator/internal/services/videos"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownVideo    = errors.New("unknown video")
	ErrInvalidFrame    = errors.New("invalid frame index")
	ErrUnknownCategory = errors.New("unknown ROI category")
	ErrNoProject       = errors.New("no project config path given")
)

// FrameSource extracts frames and probes frame counts.
type FrameSource interface {
	GetFrame(ctx context.Context, videoPath string, frameIndex int) (string, error)
	FrameCount(ctx context.Context, videoPath string) (int, error)
}

// ROIStore reads and writes ROIs in per-video metadata files.
type ROIStore interface {
	Load(path string, colors roi.ColorMap) ([]models.Shape, error)
	Save(path string, shapes []models.Shape) error
	FileROIs(path string) ([]models.FileEntry, bool, error)
}

// VideoCatalog lists and resolves the videos of a project.
type VideoCatalog interface {
	Options(dir string) ([]videos.Option, error)
	Resolve(dir, name string) (string, error)
}

// Notifier is told about saved ROIs.
type Notifier interface {
	PublishROISaved(ev messaging.ROISavedEvent) error
}

// Manager owns all annotation sessions and the collaborators they share.
type Manager struct {
	cfg      *config.Config
	frames   FrameSource
	store    ROIStore
	catalog  VideoCatalog
	notifier Notifier

	mu       sync.RWMutex
	sessions map[string]*Session

	logger zerolog.Logger
	now    func() time.Time
}

// NewManager creates the session registry. notifier may be nil.
func NewManager(cfg *config.Config, frames FrameSource, store ROIStore, catalog VideoCatalog, notifier Notifier) *Manager {
	return &Manager{
		cfg:      cfg,
		frames:   frames,
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		sessions: make(map[string]*Session),
		logger:   logging.NewServiceLogger(cfg, "session"),
		now:      time.Now,
	}
}

// Create starts a session against the project config at projectPath, or the
// configured default project when projectPath is empty.
func (m *Manager) Create(projectPath string) (*Session, error) {
	if projectPath == "" {
		projectPath = m.cfg.ProjectConfigPath
	}
	if projectPath == "" {
		return nil, ErrNoProject
	}

	project, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, err
	}

	colors, err := roi.AssignColors(project.ROITags, roi.Dark24)
	if err != nil {
		return nil, fmt.Errorf("assign ROI colors: %w", err)
	}

	id := uuid.NewString()
	logger := logging.WithSession(m.logger, id)
	if collisions := colors.Collisions(); len(collisions) > 0 {
		logger.Warn().
			Strs("categories", collisions).
			Int("palette_size", len(roi.Dark24)).
			Msg("ROI categories share a color; shapes drawn in these colors are attributed to the last category")
	}

	now := m.now()
	s := &Session{
		ID:          id,
		ProjectPath: projectPath,
		CreatedAt:   now,
		project:     project,
		colors:      colors,
		category:    project.ROITags[0],
		shapes:      make(map[string][]models.Shape),
		sliders:     make(map[string]models.FrameSlider),
		frames:      make(map[string]int),
		mgr:         m,
		logger:      logger,
	}
	s.touch(now)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	logger.Info().
		Str("project", projectPath).
		Str("videos_dir", project.VideosDirPath).
		Strs("categories", project.ROITags).
		Msg("Session created")
	return s, nil
}

// Get returns a session and marks it as recently used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.touch(m.now())
	return s, nil
}

// Delete drops a session and its in-memory ROIs.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	m.logger.Info().Str("session_id", id).Msg("Session deleted")
	return nil
}

// IDs lists the open sessions.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the idle timeout.
func (m *Manager) Sweep() int {
	if m.cfg.SessionIdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.SessionIdleTimeout)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	if len(expired) > 0 {
		m.logger.Info().Strs("sessions", expired).Msg("Expired idle sessions")
	}
	return len(expired)
}

// Run sweeps idle sessions periodically until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if m.cfg.SessionSweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(m.cfg.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
