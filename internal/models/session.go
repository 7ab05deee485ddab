package models

// SurfaceEventKind tags what changed on the drawing surface.
type SurfaceEventKind string

const (
	// The whole shape list was replaced (a shape was drawn or erased)
	SurfaceShapesReplaced SurfaceEventKind = "shapes_replaced"
	// One or more attributes of existing shapes changed
	SurfaceShapeAttributeChanged SurfaceEventKind = "shape_attribute_changed"
	// Pan/zoom only
	SurfaceViewportChanged SurfaceEventKind = "viewport_changed"
)

// IsValid checks if the event kind is known
func (k SurfaceEventKind) IsValid() bool {
	switch k {
	case SurfaceShapesReplaced, SurfaceShapeAttributeChanged, SurfaceViewportChanged:
		return true
	default:
		return false
	}
}

// AttributeEdit is a change of one attribute of the shape at Index.
// Attribute is relative to the shape, e.g. "path" or "line.color".
type AttributeEdit struct {
	Index     int    `json:"index"`
	Attribute string `json:"attribute"`
	Value     any    `json:"value"`
}

// SurfaceEvent is a change notification from the drawing surface.
type SurfaceEvent struct {
	Kind   SurfaceEventKind `json:"kind"`
	Shapes []map[string]any `json:"shapes,omitempty"`
	Edits  []AttributeEdit  `json:"edits,omitempty"`
}

// FrameSlider holds the frame slider parameters of one video.
type FrameSlider struct {
	MaxFrameIndex     int `json:"max"`
	StepSize          int `json:"step"`
	DefaultFrameIndex int `json:"value"`
}

// ROIStatusKind describes how the in-memory ROIs relate to the metadata file.
type ROIStatusKind string

const (
	ROIStatusNoFile         ROIStatusKind = "no_file"
	ROIStatusEmptyBoth      ROIStatusKind = "empty_both"
	ROIStatusFileOnly       ROIStatusKind = "file_only"
	ROIStatusMatch          ROIStatusKind = "match"
	ROIStatusUnsavedChanges ROIStatusKind = "unsaved_changes"
)

// Alert colors, matching the bootstrap palette used by the UI
const (
	AlertSuccess = "success"
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertDanger  = "danger"
	AlertLight   = "light"
)

// Alert is a user facing status message.
type Alert struct {
	Message string `json:"message"`
	Color   string `json:"color"`
}

// ROIStatus is the result of comparing storage with the metadata file.
type ROIStatus struct {
	Kind     ROIStatusKind `json:"kind"`
	FileROIs int           `json:"file_rois"`
	Alert    Alert         `json:"alert"`
}

// Buttons is the enabled state of the ROI file actions.
type Buttons struct {
	SaveDisabled bool `json:"save_disabled"`
	LoadDisabled bool `json:"load_disabled"`
}
