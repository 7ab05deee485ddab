package roi

import (
	"errors"
)

// Dark24 is the default ROI palette (plotly qualitative Dark24).
var Dark24 = []string{
	"#2E91E5", "#E15F99", "#1CA71C", "#FB0D0D", "#DA16FF", "#222A2A",
	"#B68100", "#750D86", "#EB663B", "#511CFB", "#00A08B", "#FB00D1",
	"#FC0080", "#B2828D", "#6C7C32", "#778AAE", "#862A16", "#A777F1",
	"#620042", "#1616A7", "#DA60CA", "#6C4516", "#0D2A63", "#AF0038",
}

var ErrEmptyPalette = errors.New("color palette is empty")

// ColorMap maps ROI categories to colors and back.
type ColorMap struct {
	CategoryToColor map[string]string `json:"roi2color"`
	ColorToCategory map[string]string `json:"color2roi"`

	categories []string
}

// AssignColors gives each category palette[i mod len(palette)].
// When categories outnumber the palette, the later category owns the
// reverse mapping of a shared color.
func AssignColors(categories []string, palette []string) (ColorMap, error) {
	if len(palette) == 0 {
		return ColorMap{}, ErrEmptyPalette
	}

	cm := ColorMap{
		CategoryToColor: make(map[string]string, len(categories)),
		ColorToCategory: make(map[string]string, len(categories)),
		categories:      append([]string(nil), categories...),
	}
	for i, name := range categories {
		color := palette[i%len(palette)]
		cm.CategoryToColor[name] = color
		cm.ColorToCategory[color] = name
	}
	return cm, nil
}

// Categories returns the categories in configuration order.
func (cm ColorMap) Categories() []string {
	return append([]string(nil), cm.categories...)
}

// Color returns the color of a category.
func (cm ColorMap) Color(category string) (string, bool) {
	c, ok := cm.CategoryToColor[category]
	return c, ok
}

// Category returns the category owning a color.
func (cm ColorMap) Category(color string) (string, bool) {
	c, ok := cm.ColorToCategory[color]
	return c, ok
}

// Collisions lists categories whose color resolves back to another category.
func (cm ColorMap) Collisions() []string {
	var out []string
	for _, name := range cm.categories {
		if cm.ColorToCategory[cm.CategoryToColor[name]] != name {
			out = append(out, name)
		}
	}
	return out
}
