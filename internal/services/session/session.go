package session

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/models"
	"wazp-annotator/internal/roi"
	"wazp-annotator/internal/services/messaging"
	"wazp-annotator/internal/services/metadata"
	"wazp-annotator/internal/services/videos"
)

// Session is the annotation state of one browser tab. All exported
// operations lock the session; different sessions never share state.
type Session struct {
	ID          string
	ProjectPath string
	CreatedAt   time.Time

	project *config.Project
	colors  roi.ColorMap

	mu       sync.Mutex
	shapes   map[string][]models.Shape
	sliders  map[string]models.FrameSlider
	frames   map[string]int
	video    string
	category string

	lastSeen atomic.Int64
	mgr      *Manager
	logger   zerolog.Logger
}

// View is what the drawing surface shows for one video.
type View struct {
	Video          string           `json:"video"`
	Frame          int              `json:"frame"`
	FramePath      string           `json:"-"`
	FrameURL       string           `json:"frame_url,omitempty"`
	Shapes         []map[string]any `json:"shapes"`
	Category       string           `json:"category"`
	NextShapeColor string           `json:"next_shape_color"`
	Alert          models.Alert     `json:"alert"`
}

// Selection is the result of selecting a video.
type Selection struct {
	Slider *models.FrameSlider `json:"slider,omitempty"`
	View   View                `json:"view"`
}

// ShapeUpdate reports the shapes of a video after a change.
type ShapeUpdate struct {
	Changed bool              `json:"changed"`
	Shapes  []map[string]any  `json:"shapes"`
	Rows    []models.TableRow `json:"rows"`
}

// Table is the ROI table of a video.
type Table struct {
	Rows   []models.TableRow `json:"rows"`
	Colors map[string]string `json:"colors"`
}

// FileStatus compares a video's ROIs with its metadata file.
type FileStatus struct {
	MetadataPath string           `json:"metadata_path"`
	Status       models.ROIStatus `json:"status"`
	Buttons      models.Buttons   `json:"buttons"`
}

// CategoryColor is one configured ROI category.
type CategoryColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Summary describes a session.
type Summary struct {
	ID            string         `json:"session_id"`
	ProjectPath   string         `json:"project_config_path"`
	VideosDir     string         `json:"videos_dir_path"`
	SelectedVideo string         `json:"selected_video,omitempty"`
	Category      string         `json:"category"`
	ROICounts     map[string]int `json:"roi_counts"`
	CreatedAt     time.Time      `json:"created_at"`
	LastSeen      time.Time      `json:"last_seen"`
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Summary returns an overview of the session.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(s.shapes))
	for video, shapes := range s.shapes {
		counts[video] = len(shapes)
	}
	return Summary{
		ID:            s.ID,
		ProjectPath:   s.ProjectPath,
		VideosDir:     s.project.VideosDirPath,
		SelectedVideo: s.video,
		Category:      s.category,
		ROICounts:     counts,
		CreatedAt:     s.CreatedAt,
		LastSeen:      s.LastSeen(),
	}
}

// VideoOptions lists the videos of the session's project.
func (s *Session) VideoOptions() ([]videos.Option, error) {
	return s.mgr.catalog.Options(s.project.VideosDirPath)
}

// Categories lists the ROI categories in configuration order with their colors.
func (s *Session) Categories() []CategoryColor {
	names := s.colors.Categories()
	out := make([]CategoryColor, 0, len(names))
	for _, name := range names {
		color, _ := s.colors.Color(name)
		out = append(out, CategoryColor{Name: name, Color: color})
	}
	return out
}

// Colors returns the session's category color mapping.
func (s *Session) Colors() roi.ColorMap {
	return s.colors
}

// Shapes returns a copy of the stored shapes of a video.
func (s *Session) Shapes(video string) []models.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneShapes(s.shapes[video])
}

// resolve maps a video name to its path and creates its shape entry.
// Callers hold s.mu.
func (s *Session) resolve(video string) (string, error) {
	path, err := s.mgr.catalog.Resolve(s.project.VideosDirPath, video)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownVideo, err)
	}
	if _, ok := s.shapes[video]; !ok {
		s.shapes[video] = []models.Shape{}
	}
	return path, nil
}

// slider returns the cached slider of a video, probing the video on first use.
// A nil slider means the video could not be read. Callers hold s.mu.
func (s *Session) slider(ctx context.Context, video, path string) *models.FrameSlider {
	if sl, ok := s.sliders[video]; ok {
		return &sl
	}
	count, err := s.mgr.frames.FrameCount(ctx, path)
	if err != nil {
		logging.WithVideo(s.logger, video).Warn().Err(err).Msg("Failed to probe video")
		return nil
	}
	sl := ComputeSlider(count)
	s.sliders[video] = sl
	logging.WithVideo(s.logger, video).Debug().
		Int("frame_count", count).
		Int("step", sl.StepSize).
		Msg("Frame slider computed")
	return &sl
}

func (s *Session) surfaceShapes(video string) []map[string]any {
	stored := s.shapes[video]
	out := make([]map[string]any, 0, len(stored))
	for _, shape := range stored {
		out = append(out, roi.StripSessionOnlyFields(shape))
	}
	return out
}

func (s *Session) tableRows(video string) []models.TableRow {
	stored := s.shapes[video]
	rows := make([]models.TableRow, 0, len(stored))
	for _, shape := range stored {
		rows = append(rows, roi.SurfaceShapeToTableRow(shape))
	}
	return rows
}

// render builds the view of one frame. Callers hold s.mu.
func (s *Session) render(ctx context.Context, video, path string, frame int) View {
	color, _ := s.colors.Color(s.category)
	view := View{
		Video:          video,
		Frame:          frame,
		Shapes:         s.surfaceShapes(video),
		Category:       s.category,
		NextShapeColor: color,
	}

	framePath, err := s.mgr.frames.GetFrame(ctx, path, frame)
	if err != nil {
		logging.WithVideo(s.logger, video).Warn().Err(err).Int("frame", frame).Msg("Frame not available")
		view.Alert = extractionAlert(video)
		return view
	}

	view.FramePath = framePath
	view.Alert = models.Alert{
		Message: fmt.Sprintf("Showing frame %d from %s.", frame, video),
		Color:   models.AlertSuccess,
	}
	return view
}

func (s *Session) unreadable(video string) View {
	color, _ := s.colors.Color(s.category)
	return View{
		Video:          video,
		Shapes:         s.surfaceShapes(video),
		Category:       s.category,
		NextShapeColor: color,
		Alert:          extractionAlert(video),
	}
}

func extractionAlert(video string) models.Alert {
	return models.Alert{
		Message: fmt.Sprintf("Could not extract frames from %s. Make sure that it is a valid video file.", video),
		Color:   models.AlertDanger,
	}
}

// SelectVideo makes video the active one, sets the frame to the slider default
// and renders it. Slider parameters are computed once per video.
func (s *Session) SelectVideo(ctx context.Context, video string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return Selection{}, err
	}
	s.video = video

	sl := s.slider(ctx, video, path)
	if sl == nil {
		return Selection{View: s.unreadable(video)}, nil
	}

	s.frames[video] = sl.DefaultFrameIndex
	logging.WithVideo(s.logger, video).Info().Int("frame", sl.DefaultFrameIndex).Msg("Video selected")
	return Selection{Slider: sl, View: s.render(ctx, video, path, sl.DefaultFrameIndex)}, nil
}

// SetFrame moves the frame slider of video. Storage is not changed.
func (s *Session) SetFrame(ctx context.Context, video string, frame int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return View{}, err
	}
	sl := s.slider(ctx, video, path)
	if sl == nil {
		return s.unreadable(video), nil
	}
	if frame < 0 || frame > sl.MaxFrameIndex {
		return View{}, fmt.Errorf("%w: %d is outside [0, %d]", ErrInvalidFrame, frame, sl.MaxFrameIndex)
	}

	s.video = video
	s.frames[video] = frame
	return s.render(ctx, video, path, frame), nil
}

// View renders the current frame of video.
func (s *Session) View(ctx context.Context, video string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return View{}, err
	}
	frame, ok := s.frames[video]
	if !ok {
		sl := s.slider(ctx, video, path)
		if sl == nil {
			return s.unreadable(video), nil
		}
		frame = sl.DefaultFrameIndex
		s.frames[video] = frame
	}
	return s.render(ctx, video, path, frame), nil
}

// FramePath returns the cached image of a frame of video, extracting it if
// needed. A negative frame means the current frame.
func (s *Session) FramePath(ctx context.Context, video string, frame int) (string, error) {
	s.mu.Lock()
	path, err := s.resolve(video)
	if err == nil && frame < 0 {
		current, ok := s.frames[video]
		if !ok {
			s.mu.Unlock()
			return "", fmt.Errorf("%w: no frame selected for %s", ErrInvalidFrame, video)
		}
		frame = current
	}
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	return s.mgr.frames.GetFrame(ctx, path, frame)
}

// SetCategory changes the category of the next drawn shape and re-renders
// the selected video, if any.
func (s *Session) SetCategory(ctx context.Context, category string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.colors.Color(category)
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.category = category

	if s.video == "" {
		return View{Category: category, NextShapeColor: color, Shapes: []map[string]any{}}, nil
	}
	path, err := s.resolve(s.video)
	if err != nil {
		return View{}, err
	}
	frame, ok := s.frames[s.video]
	if !ok {
		return s.unreadable(s.video), nil
	}
	return s.render(ctx, s.video, path, frame), nil
}

// HandleSurfaceEvent applies a drawing-surface change to the shapes of video.
// New and edited shapes are stamped with the video's current frame, so a
// frame must have been selected first.
func (s *Session) HandleSurfaceEvent(ctx context.Context, video string, event models.SurfaceEvent) (ShapeUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.resolve(video); err != nil {
		return ShapeUpdate{}, err
	}

	frame, ok := s.frames[video]
	if !ok && event.Kind != models.SurfaceViewportChanged {
		return ShapeUpdate{}, fmt.Errorf("%w: no frame selected for %s", ErrInvalidFrame, video)
	}

	updated, changed, err := roi.Reconcile(event, s.shapes[video], frame, s.colors)
	if err != nil {
		return ShapeUpdate{}, err
	}
	if changed {
		s.shapes[video] = updated
		logging.WithVideo(s.logger, video).Debug().
			Str("event", string(event.Kind)).
			Int("rois", len(updated)).
			Msg("ROIs updated from drawing surface")
	}

	return ShapeUpdate{
		Changed: changed,
		Shapes:  s.surfaceShapes(video),
		Rows:    s.tableRows(video),
	}, nil
}

// HandleRelayout parses a raw relayout payload and applies it.
func (s *Session) HandleRelayout(ctx context.Context, video string, payload map[string]any) (ShapeUpdate, error) {
	event, err := roi.ParseRelayout(payload)
	if err != nil {
		return ShapeUpdate{}, err
	}
	return s.HandleSurfaceEvent(ctx, video, event)
}

// DeleteCategories removes every shape of video whose category is in names.
func (s *Session) DeleteCategories(video string, names []string) (ShapeUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.resolve(video); err != nil {
		return ShapeUpdate{}, err
	}

	stored := s.shapes[video]
	kept := make([]models.Shape, 0, len(stored))
	for _, shape := range stored {
		if !slices.Contains(names, shape.Category) {
			kept = append(kept, shape)
		}
	}
	changed := len(kept) != len(stored)
	if changed {
		s.shapes[video] = kept
		logging.WithVideo(s.logger, video).Info().
			Strs("categories", names).
			Int("removed", len(stored)-len(kept)).
			Msg("Deleted ROIs")
	}

	return ShapeUpdate{
		Changed: changed,
		Shapes:  s.surfaceShapes(video),
		Rows:    s.tableRows(video),
	}, nil
}

// Table returns the ROI table of video.
func (s *Session) Table(video string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.resolve(video); err != nil {
		return Table{}, err
	}
	colors := make(map[string]string, len(s.colors.CategoryToColor))
	for name, color := range s.colors.CategoryToColor {
		colors[name] = color
	}
	return Table{Rows: s.tableRows(video), Colors: colors}, nil
}

// status compares storage with the metadata file. Callers hold s.mu.
func (s *Session) status(video, path string) (FileStatus, error) {
	metaPath := metadata.MetadataPath(path)
	entries, exists, err := s.mgr.store.FileROIs(metaPath)
	if err != nil {
		return FileStatus{}, err
	}
	stored := s.shapes[video]
	return FileStatus{
		MetadataPath: metaPath,
		Status:       metadata.DiffStatus(stored, entries, exists, metaPath),
		Buttons:      metadata.FileButtons(len(stored), len(entries), exists),
	}, nil
}

// Status compares the ROIs of video with its metadata file.
func (s *Session) Status(video string) (FileStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return FileStatus{}, err
	}
	return s.status(video, path)
}

// LoadROIs replaces the in-memory ROIs of video with those of its metadata file.
func (s *Session) LoadROIs(video string) (ShapeUpdate, FileStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return ShapeUpdate{}, FileStatus{}, err
	}

	shapes, err := s.mgr.store.Load(metadata.MetadataPath(path), s.colors)
	if err != nil {
		return ShapeUpdate{}, FileStatus{}, err
	}
	s.shapes[video] = shapes

	st, err := s.status(video, path)
	if err != nil {
		return ShapeUpdate{}, FileStatus{}, err
	}
	return ShapeUpdate{
		Changed: true,
		Shapes:  s.surfaceShapes(video),
		Rows:    s.tableRows(video),
	}, st, nil
}

// SaveROIs writes the in-memory ROIs of video to its metadata file. When
// saving is disabled it changes nothing and returns the current status.
func (s *Session) SaveROIs(video string) (FileStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.resolve(video)
	if err != nil {
		return FileStatus{}, err
	}

	before, err := s.status(video, path)
	if err != nil {
		return FileStatus{}, err
	}
	if before.Buttons.SaveDisabled {
		logging.WithVideo(s.logger, video).Debug().Str("status", string(before.Status.Kind)).Msg("Save is disabled")
		return before, nil
	}

	stored := s.shapes[video]
	if err := s.mgr.store.Save(before.MetadataPath, stored); err != nil {
		return FileStatus{}, err
	}

	after, err := s.status(video, path)
	if err != nil {
		return FileStatus{}, err
	}
	if after.Status.Kind == models.ROIStatusMatch {
		after.Status.Alert.Message = fmt.Sprintf("Saved ROIs to %s", filepath.Base(after.MetadataPath))
	}

	s.notifySaved(video, after.MetadataPath, stored)
	return after, nil
}

func (s *Session) notifySaved(video, metaPath string, stored []models.Shape) {
	if s.mgr.notifier == nil {
		return
	}
	var categories []string
	for _, shape := range stored {
		if !slices.Contains(categories, shape.Category) {
			categories = append(categories, shape.Category)
		}
	}
	err := s.mgr.notifier.PublishROISaved(messaging.ROISavedEvent{
		SessionID:    s.ID,
		Video:        video,
		MetadataPath: metaPath,
		ROICount:     len(stored),
		Categories:   categories,
		SavedAt:      s.mgr.now().UTC(),
	})
	if err != nil {
		logging.WithVideo(s.logger, video).Warn().Err(err).Msg("Failed to publish ROI save event")
	}
}
