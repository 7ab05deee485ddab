package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/models"
	"wazp-annotator/internal/services/metadata"
	"wazp-annotator/internal/services/session"
	"wazp-annotator/internal/services/videos"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}

type fakeFrames struct {
	dir   string
	count int
}

func (f *fakeFrames) GetFrame(ctx context.Context, videoPath string, frameIndex int) (string, error) {
	path := filepath.Join(f.dir, fmt.Sprintf("%s_frame-%d.png", filepath.Base(videoPath), frameIndex))
	return path, os.WriteFile(path, pngHeader, 0o644)
}

func (f *fakeFrames) FrameCount(ctx context.Context, videoPath string) (int, error) {
	return f.count, nil
}

type testAPI struct {
	router *gin.Engine
	dir    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.mp4"), []byte("video"), 0o644))
	projectPath := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(projectPath, []byte("videos_dir_path: .\nROI_tags:\n  - feeder\n  - nest\n"), 0o644))

	cfg := &config.Config{
		InstanceID:        "test",
		Version:           "0.0.1",
		ProjectConfigPath: projectPath,
		VideoExtensions:   []string{".mp4"},
	}
	mgr := session.NewManager(cfg, &fakeFrames{dir: t.TempDir(), count: 1000}, metadata.NewService(cfg), videos.NewCatalog(cfg), nil)

	health := NewHealthHandler(cfg.InstanceID, cfg.Version)
	system := NewSystemHandler(cfg.InstanceID, mgr)
	sessions := NewSessionHandler(mgr)
	video := NewVideoHandler()
	rois := NewROIHandler()

	r := gin.New()
	r.GET("/", health.ServiceInfo)
	r.GET("/health", health.HealthCheck)
	r.GET("/system/stats", system.GetStats)
	r.POST("/sessions", sessions.CreateSession)
	g := r.Group("/sessions/:session_id", sessions.RequireSession())
	g.GET("", sessions.GetSession)
	g.DELETE("", sessions.DeleteSession)
	g.GET("/videos", sessions.ListVideos)
	g.GET("/categories", sessions.ListCategories)
	g.PUT("/category", sessions.SetCategory)
	v := g.Group("/videos/:video")
	v.POST("/select", video.SelectVideo)
	v.PUT("/frame", video.SetFrame)
	v.GET("/view", video.GetView)
	v.GET("/image", video.GetFrameImage)
	v.POST("/shapes", rois.UpdateShapes)
	v.GET("/rois", rois.GetTable)
	v.POST("/rois/load", rois.LoadROIs)
	v.POST("/rois/save", rois.SaveROIs)
	v.POST("/rois/delete", rois.DeleteROIs)
	v.GET("/status", rois.GetStatus)

	return &testAPI{router: r, dir: dir}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testAPI) createSession(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[session.Summary](t, w).ID
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, HealthResponse{Status: "healthy", InstanceID: "test"}, decode[HealthResponse](t, w))

	w = a.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0.0.1", decode[ServiceInfoResponse](t, w).Version)

	w = a.do(t, http.MethodGet, "/system/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"sessions":0`)
}

func TestSessionLifecycle(t *testing.T) {
	a := newTestAPI(t)
	id := a.createSession(t)

	w := a.do(t, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "feeder", decode[session.Summary](t, w).Category)

	w = a.do(t, http.MethodGet, "/sessions/"+id+"/videos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []videos.Option{{Label: "v1.mp4", Value: "v1.mp4"}}, decode[VideosResponse](t, w).Videos)

	w = a.do(t, http.MethodGet, "/sessions/"+id+"/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[CategoriesResponse](t, w).Categories, 2)

	w = a.do(t, http.MethodPut, "/sessions/"+id+"/category", SetCategoryRequest{Category: "nest"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "#E15F99", decode[session.View](t, w).NextShapeColor)

	w = a.do(t, http.MethodPut, "/sessions/"+id+"/category", SetCategoryRequest{Category: "cage"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionWithBadProject(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodPost, "/sessions", CreateSessionRequest{ProjectConfigPath: filepath.Join(a.dir, "missing.yaml")})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, decode[ErrorResponse](t, w).Error)
}

func TestSelectVideoAndFrames(t *testing.T) {
	a := newTestAPI(t)
	id := a.createSession(t)
	base := "/sessions/" + id + "/videos/v1.mp4"

	w := a.do(t, http.MethodPost, base+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sel := decode[session.Selection](t, w)
	require.Equal(t, &models.FrameSlider{MaxFrameIndex: 999, StepSize: 250, DefaultFrameIndex: 500}, sel.Slider)
	require.Equal(t, "/sessions/"+id+"/videos/v1.mp4/image?frame=500", sel.View.FrameURL)
	require.Equal(t, models.AlertSuccess, sel.View.Alert.Color)

	w = a.do(t, http.MethodPost, "/sessions/"+id+"/videos/v9.mp4/select", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodPut, base+"/frame", map[string]any{"frame": 1000})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPut, base+"/frame", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPut, base+"/frame", SetFrameRequest{Frame: ptr(0)})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, decode[session.View](t, w).Frame)

	w = a.do(t, http.MethodGet, base+"/view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, decode[session.View](t, w).Frame)

	w = a.do(t, http.MethodGet, base+"/image", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = a.do(t, http.MethodGet, base+"/image?frame=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShapesSaveAndLoad(t *testing.T) {
	a := newTestAPI(t)
	id := a.createSession(t)
	base := "/sessions/" + id + "/videos/v1.mp4"

	w := a.do(t, http.MethodPost, base+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)

	shape := map[string]any{
		"type":     "path",
		"path":     "M10,10L20,10L20,20Z",
		"editable": true,
		"line":     map[string]any{"color": "#2E91E5"},
	}
	w = a.do(t, http.MethodPost, base+"/shapes", map[string]any{"shapes": []any{shape}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decode[session.ShapeUpdate](t, w)
	require.True(t, upd.Changed)
	require.Equal(t, []models.TableRow{{Name: "feeder", OnFrame: 500, Path: "M10,10L20,10L20,20Z"}}, upd.Rows)

	w = a.do(t, http.MethodPost, base+"/shapes", map[string]any{"kind": "viewport_changed"})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decode[session.ShapeUpdate](t, w).Changed)

	w = a.do(t, http.MethodPost, base+"/shapes", map[string]any{"kind": "zoom"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, base+"/shapes", map[string]any{
		"shapes": []any{map[string]any{"path": "M1,1Z", "line": map[string]any{"color": "#123456"}}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(t, http.MethodGet, base+"/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[session.FileStatus](t, w)
	require.Equal(t, models.ROIStatusNoFile, st.Status.Kind)
	require.True(t, st.Buttons.SaveDisabled)

	w = a.do(t, http.MethodPost, base+"/rois/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode[session.FileStatus](t, w).Buttons.SaveDisabled)

	w = a.do(t, http.MethodPost, base+"/rois/load", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, os.WriteFile(filepath.Join(a.dir, "v1.metadata.yaml"), []byte("Camera: Cam1\n"), 0o644))

	w = a.do(t, http.MethodPost, base+"/rois/load", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(t, http.MethodPost, base+"/rois/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st = decode[session.FileStatus](t, w)
	require.Equal(t, models.ROIStatusMatch, st.Status.Kind)
	require.Equal(t, "Saved ROIs to v1.metadata.yaml", st.Status.Alert.Message)

	w = a.do(t, http.MethodPost, base+"/rois/delete", DeleteROIsRequest{Names: []string{"feeder"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[session.ShapeUpdate](t, w).Rows)

	w = a.do(t, http.MethodPost, base+"/rois/load", nil)
	require.Equal(t, http.StatusOK, w.Code)
	loaded := decode[LoadResponse](t, w)
	require.Len(t, loaded.Rows, 1)
	require.Equal(t, models.ROIStatusMatch, loaded.Status.Kind)

	w = a.do(t, http.MethodGet, base+"/rois", nil)
	require.Equal(t, http.StatusOK, w.Code)
	table := decode[session.Table](t, w)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "#2E91E5", table.Colors["feeder"])
}

func ptr[T any](v T) *T { return &v }
