package roi

import (
	"errors"
	"fmt"

	"wazp-annotator/internal/models"
)

var ErrMalformedShape = errors.New("malformed shape")

// Drawing-surface keys the codec interprets
const (
	keyPath     = "path"
	keyType     = "type"
	keyEditable = "editable"
	keyLine     = "line"
	keyColor    = "color"

	keyCategory = "roi_name"
	keyFrame    = "drawn_on_frame"
)

// Styling applied to shapes rebuilt from a metadata file
const (
	DefaultShapeType = "path"
	DefaultLineWidth = 4
	DefaultLineDash  = "solid"
	DefaultFillColor = "rgba(0,0,0,0)"
)

func missingField(field string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedShape, field)
}

// SurfaceShapeFromMap parses a shape as emitted by the drawing surface.
// Storage-only keys are read when present so a storage map parses too.
func SurfaceShapeFromMap(m map[string]any) (models.Shape, error) {
	var s models.Shape

	path, ok := m[keyPath].(string)
	if !ok || path == "" {
		return s, missingField(keyPath)
	}
	line, ok := m[keyLine].(map[string]any)
	if !ok {
		return s, missingField(keyLine)
	}
	color, ok := line[keyColor].(string)
	if !ok || color == "" {
		return s, missingField("line.color")
	}

	s.Path = path
	s.LineColor = color
	if t, ok := m[keyType].(string); ok {
		s.Type = t
	}
	if e, ok := m[keyEditable].(bool); ok {
		s.Editable = e
	}
	if name, ok := m[keyCategory].(string); ok {
		s.Category = name
	}
	if frame, ok := toInt(m[keyFrame]); ok {
		s.LastEditedFrame = frame
	}

	for k, v := range m {
		switch k {
		case keyPath, keyType, keyEditable, keyLine, keyCategory, keyFrame:
			continue
		}
		if s.Style == nil {
			s.Style = make(map[string]any)
		}
		s.Style[k] = v
	}
	for k, v := range line {
		if k == keyColor {
			continue
		}
		if s.LineStyle == nil {
			s.LineStyle = make(map[string]any)
		}
		s.LineStyle[k] = v
	}

	return s.Clone(), nil
}

// StripSessionOnlyFields returns the shape in drawing-surface form, without
// the category and frame bookkeeping the surface does not accept.
func StripSessionOnlyFields(s models.Shape) map[string]any {
	c := s.Clone()
	m := make(map[string]any, len(c.Style)+4)
	for k, v := range c.Style {
		m[k] = v
	}
	line := make(map[string]any, len(c.LineStyle)+1)
	for k, v := range c.LineStyle {
		line[k] = v
	}
	line[keyColor] = s.LineColor

	m[keyPath] = s.Path
	m[keyLine] = line
	m[keyEditable] = s.Editable
	if s.Type != "" {
		m[keyType] = s.Type
	}
	return m
}

// SurfaceShapeToTableRow extracts the ROI table columns.
func SurfaceShapeToTableRow(s models.Shape) models.TableRow {
	return models.TableRow{
		Name:    s.Category,
		OnFrame: s.LastEditedFrame,
		Path:    s.Path,
	}
}

// StorageShapeToFileEntry extracts the fields persisted in the metadata file.
func StorageShapeToFileEntry(s models.Shape) (models.FileEntry, error) {
	if s.Category == "" {
		return models.FileEntry{}, missingField("name")
	}
	if s.Path == "" {
		return models.FileEntry{}, missingField(keyPath)
	}
	if s.LineColor == "" {
		return models.FileEntry{}, missingField("line_color")
	}
	return models.FileEntry{
		Name:         s.Category,
		DrawnOnFrame: s.LastEditedFrame,
		LineColor:    s.LineColor,
		Path:         s.Path,
	}, nil
}

// StorageShapesToFileEntries converts a whole storage list, failing on the first bad shape.
func StorageShapesToFileEntries(shapes []models.Shape) ([]models.FileEntry, error) {
	entries := make([]models.FileEntry, 0, len(shapes))
	for i, s := range shapes {
		e, err := StorageShapeToFileEntry(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FileEntryToStorageShape rebuilds a drawable shape from a metadata file entry.
// The line color comes from the category; the entry's own line_color is only
// used for categories the project does not configure.
func FileEntryToStorageShape(e models.FileEntry, colors ColorMap) (models.Shape, error) {
	if e.Name == "" {
		return models.Shape{}, missingField("name")
	}
	if e.Path == "" {
		return models.Shape{}, missingField(keyPath)
	}
	color, ok := colors.Color(e.Name)
	if !ok {
		color = e.LineColor
	}
	if color == "" {
		return models.Shape{}, missingField("line_color")
	}

	return models.Shape{
		Path:      e.Path,
		LineColor: color,
		Type:      DefaultShapeType,
		Editable:  true,
		Style: map[string]any{
			"fillcolor": DefaultFillColor,
		},
		LineStyle: map[string]any{
			"width": DefaultLineWidth,
			"dash":  DefaultLineDash,
		},
		Category:        e.Name,
		LastEditedFrame: e.DrawnOnFrame,
	}, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
