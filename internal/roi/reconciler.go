package roi

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"wazp-annotator/internal/models"
)

var (
	ErrUnknownColor  = errors.New("no ROI category for color")
	ErrShapeIndex    = errors.New("shape index out of range")
	ErrInvalidEvent  = errors.New("invalid surface event")
	shapeAttrPattern = regexp.MustCompile(`^shapes\[(\d+)\]\.(.+)$`)
)

// Reconcile applies a drawing-surface event to the stored shapes of one video.
//
// It returns the new shape list and whether anything changed. A viewport-only
// event returns the input unchanged with changed=false. The input slice is
// never modified.
func Reconcile(event models.SurfaceEvent, stored []models.Shape, currentFrame int, colors ColorMap) ([]models.Shape, bool, error) {
	switch event.Kind {
	case models.SurfaceShapesReplaced:
		return reconcileShapes(event.Shapes, stored, currentFrame, colors)
	case models.SurfaceShapeAttributeChanged:
		return applyEdits(event.Edits, stored, currentFrame, colors)
	case models.SurfaceViewportChanged:
		return stored, false, nil
	default:
		return stored, false, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, event.Kind)
	}
}

func reconcileShapes(raw []map[string]any, stored []models.Shape, currentFrame int, colors ColorMap) ([]models.Shape, bool, error) {
	surface := make([]models.Shape, 0, len(raw))
	for i, m := range raw {
		s, err := SurfaceShapeFromMap(m)
		if err != nil {
			return stored, false, fmt.Errorf("surface shape %d: %w", i, err)
		}
		surface = append(surface, s)
	}

	updated := models.CloneShapes(stored)
	if updated == nil {
		updated = []models.Shape{}
	}

	var removed []int
	for i, s := range updated {
		if !models.ContainsShape(surface, s) {
			removed = append(removed, i)
		}
	}
	// highest index first so earlier deletions do not shift later ones
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))
	for _, i := range removed {
		updated = append(updated[:i], updated[i+1:]...)
	}

	added := 0
	for _, s := range surface {
		if models.ContainsShape(stored, s) {
			continue
		}
		category, ok := colors.Category(s.LineColor)
		if !ok {
			return stored, false, fmt.Errorf("%w: %s", ErrUnknownColor, s.LineColor)
		}
		s.Category = category
		s.LastEditedFrame = currentFrame
		updated = append(updated, s)
		added++
	}

	return updated, len(removed) > 0 || added > 0, nil
}

func applyEdits(edits []models.AttributeEdit, stored []models.Shape, currentFrame int, colors ColorMap) ([]models.Shape, bool, error) {
	if len(edits) == 0 {
		return stored, false, nil
	}

	updated := models.CloneShapes(stored)
	for _, edit := range edits {
		if edit.Index < 0 || edit.Index >= len(updated) {
			return stored, false, fmt.Errorf("%w: %d (have %d)", ErrShapeIndex, edit.Index, len(updated))
		}
		if err := setAttribute(&updated[edit.Index], edit.Attribute, edit.Value, colors); err != nil {
			return stored, false, err
		}
		updated[edit.Index].LastEditedFrame = currentFrame
	}
	return updated, true, nil
}

func setAttribute(s *models.Shape, attr string, value any, colors ColorMap) error {
	switch {
	case attr == "":
		return fmt.Errorf("%w: empty attribute", ErrInvalidEvent)
	case attr == keyCategory || attr == keyFrame:
		return fmt.Errorf("%w: %q is not a surface attribute", ErrInvalidEvent, attr)
	case attr == keyPath:
		path, ok := value.(string)
		if !ok || path == "" {
			return fmt.Errorf("%w: path must be a non-empty string", ErrInvalidEvent)
		}
		s.Path = path
	case attr == keyType:
		t, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: type must be a string", ErrInvalidEvent)
		}
		s.Type = t
	case attr == keyEditable:
		e, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: editable must be a bool", ErrInvalidEvent)
		}
		s.Editable = e
	case attr == keyLine+"."+keyColor:
		color, ok := value.(string)
		if !ok || color == "" {
			return fmt.Errorf("%w: line.color must be a non-empty string", ErrInvalidEvent)
		}
		category, ok := colors.Category(color)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColor, color)
		}
		s.LineColor = color
		s.Category = category
	case strings.HasPrefix(attr, keyLine+"."):
		if s.LineStyle == nil {
			s.LineStyle = make(map[string]any)
		}
		s.LineStyle[strings.TrimPrefix(attr, keyLine+".")] = value
	default:
		if s.Style == nil {
			s.Style = make(map[string]any)
		}
		s.Style[attr] = value
	}
	return nil
}

// ParseRelayout turns a raw relayout payload from the drawing surface into a
// SurfaceEvent. A "shapes" key means the shape list was replaced; keys of the
// form shapes[i].attr are attribute edits; anything else is pan/zoom.
func ParseRelayout(payload map[string]any) (models.SurfaceEvent, error) {
	if raw, ok := payload["shapes"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return models.SurfaceEvent{}, fmt.Errorf("%w: shapes must be a list", ErrInvalidEvent)
		}
		shapes := make([]map[string]any, 0, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return models.SurfaceEvent{}, fmt.Errorf("%w: shapes[%d] is not an object", ErrInvalidEvent, i)
			}
			shapes = append(shapes, m)
		}
		return models.SurfaceEvent{Kind: models.SurfaceShapesReplaced, Shapes: shapes}, nil
	}

	var edits []models.AttributeEdit
	for key, value := range payload {
		match := shapeAttrPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			return models.SurfaceEvent{}, fmt.Errorf("%w: bad shape index in %q", ErrInvalidEvent, key)
		}
		edits = append(edits, models.AttributeEdit{Index: index, Attribute: match[2], Value: value})
	}
	if len(edits) == 0 {
		return models.SurfaceEvent{Kind: models.SurfaceViewportChanged}, nil
	}

	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Index != edits[j].Index {
			return edits[i].Index < edits[j].Index
		}
		return edits[i].Attribute < edits[j].Attribute
	})
	return models.SurfaceEvent{Kind: models.SurfaceShapeAttributeChanged, Edits: edits}, nil
}
