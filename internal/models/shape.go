package models

// Shape is one drawn ROI as held in session storage.
//
// Path and LineColor are the only fields the core interprets. Every other
// drawing-surface field is carried in Style (top level) or LineStyle (inside
// the "line" object) and handed back to the surface untouched.
type Shape struct {
	Path      string
	LineColor string
	Type      string
	Editable  bool
	Style     map[string]any
	LineStyle map[string]any

	// Session bookkeeping, never sent to the drawing surface
	Category        string
	LastEditedFrame int
}

// Equal reports whether two shapes describe the same outline in the same
// color. Category and frame are ignored.
func (s Shape) Equal(o Shape) bool {
	return s.Path == o.Path && s.LineColor == o.LineColor
}

// Clone returns a copy that shares no maps with s.
func (s Shape) Clone() Shape {
	c := s
	c.Style = cloneMap(s.Style)
	c.LineStyle = cloneMap(s.LineStyle)
	return c
}

// ContainsShape reports whether any shape in list equals s.
func ContainsShape(list []Shape, s Shape) bool {
	for _, other := range list {
		if other.Equal(s) {
			return true
		}
	}
	return false
}

// CloneShapes deep-copies a shape list. A nil list stays nil.
func CloneShapes(shapes []Shape) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// FileEntry is one item of the ROIs list in a video's metadata file.
type FileEntry struct {
	Name         string `yaml:"name" json:"name"`
	DrawnOnFrame int    `yaml:"drawn_on_frame" json:"drawn_on_frame"`
	LineColor    string `yaml:"line_color" json:"line_color"`
	Path         string `yaml:"path" json:"path"`
}

// TableRow is one row of the ROI table.
type TableRow struct {
	Name    string `json:"name"`
	OnFrame int    `json:"on_frame"`
	Path    string `json:"path"`
}
