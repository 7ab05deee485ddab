package roi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wazp-annotator/internal/models"
)

func testColors(t *testing.T) ColorMap {
	t.Helper()
	cm, err := AssignColors([]string{"feeder", "nest"}, Dark24)
	require.NoError(t, err)
	return cm
}

func surfaceMap(path, color string) map[string]any {
	return map[string]any{
		"editable":  true,
		"fillcolor": "rgba(0,0,0,0)",
		"fillrule":  "evenodd",
		"layer":     "above",
		"line":      map[string]any{"color": color, "dash": "solid", "width": float64(4)},
		"opacity":   float64(1),
		"path":      path,
		"type":      "path",
	}
}

func TestFileEntryRoundTrip(t *testing.T) {
	colors := testColors(t)
	s := models.Shape{
		Path:            "M10,10L20,10L20,20Z",
		LineColor:       Dark24[0],
		Type:            "path",
		Category:        "feeder",
		LastEditedFrame: 1200,
	}

	entry, err := StorageShapeToFileEntry(s)
	require.NoError(t, err)
	require.Equal(t, models.FileEntry{Name: "feeder", DrawnOnFrame: 1200, LineColor: Dark24[0], Path: s.Path}, entry)

	back, err := FileEntryToStorageShape(entry, colors)
	require.NoError(t, err)
	require.Equal(t, s.Category, back.Category)
	require.Equal(t, s.LastEditedFrame, back.LastEditedFrame)
	require.Equal(t, s.Path, back.Path)
	require.Equal(t, s.LineColor, back.LineColor)
	require.True(t, back.Editable)
	require.Equal(t, DefaultShapeType, back.Type)
	require.Equal(t, DefaultFillColor, back.Style["fillcolor"])
	require.Equal(t, DefaultLineWidth, back.LineStyle["width"])
	require.Equal(t, DefaultLineDash, back.LineStyle["dash"])
}

func TestFileEntryUnknownCategoryKeepsFileColor(t *testing.T) {
	s, err := FileEntryToStorageShape(models.FileEntry{Name: "burrow", LineColor: "#ABCDEF", Path: "M0,0Z"}, testColors(t))
	require.NoError(t, err)
	require.Equal(t, "#ABCDEF", s.LineColor)
}

func TestFileEntryMalformed(t *testing.T) {
	colors := testColors(t)
	_, err := FileEntryToStorageShape(models.FileEntry{Path: "M0,0Z"}, colors)
	require.ErrorIs(t, err, ErrMalformedShape)
	require.Contains(t, err.Error(), `"name"`)

	_, err = FileEntryToStorageShape(models.FileEntry{Name: "nest"}, colors)
	require.ErrorIs(t, err, ErrMalformedShape)
	require.Contains(t, err.Error(), `"path"`)

	_, err = StorageShapeToFileEntry(models.Shape{Path: "M0,0Z", LineColor: "#000"})
	require.ErrorIs(t, err, ErrMalformedShape)
}

func TestSurfaceShapeFromMapKeepsStyle(t *testing.T) {
	m := surfaceMap("M1,1L2,2Z", Dark24[1])
	s, err := SurfaceShapeFromMap(m)
	require.NoError(t, err)
	require.Equal(t, "M1,1L2,2Z", s.Path)
	require.Equal(t, Dark24[1], s.LineColor)
	require.Equal(t, "path", s.Type)
	require.True(t, s.Editable)
	require.Equal(t, "evenodd", s.Style["fillrule"])
	require.Equal(t, float64(4), s.LineStyle["width"])

	// back to the surface without losing anything
	require.Equal(t, m, StripSessionOnlyFields(s))
}

func TestSurfaceShapeFromMapMissingFields(t *testing.T) {
	_, err := SurfaceShapeFromMap(map[string]any{"line": map[string]any{"color": "#fff"}})
	require.ErrorIs(t, err, ErrMalformedShape)
	require.Contains(t, err.Error(), `"path"`)

	_, err = SurfaceShapeFromMap(map[string]any{"path": "M0,0Z"})
	require.ErrorIs(t, err, ErrMalformedShape)

	_, err = SurfaceShapeFromMap(map[string]any{"path": "M0,0Z", "line": map[string]any{"width": 2}})
	require.ErrorIs(t, err, ErrMalformedShape)
	require.Contains(t, err.Error(), "line.color")
}

func TestStripSessionOnlyFields(t *testing.T) {
	s := models.Shape{Path: "M0,0Z", LineColor: "#fff", Category: "nest", LastEditedFrame: 7}

	surface := StripSessionOnlyFields(s)
	require.NotContains(t, surface, "roi_name")
	require.NotContains(t, surface, "drawn_on_frame")

	parsed, err := SurfaceShapeFromMap(surface)
	require.NoError(t, err)
	require.Equal(t, "M0,0Z", parsed.Path)
	require.Equal(t, "#fff", parsed.LineColor)
	require.Empty(t, parsed.Category)
	require.Zero(t, parsed.LastEditedFrame)
}

func TestSurfaceShapeToTableRow(t *testing.T) {
	row := SurfaceShapeToTableRow(models.Shape{Path: "M0,0Z", Category: "nest", LastEditedFrame: 3})
	require.Equal(t, models.TableRow{Name: "nest", OnFrame: 3, Path: "M0,0Z"}, row)
}
