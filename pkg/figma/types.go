// Package figma holds the wire types consumed by the Figma plugin and builds
// figma-variables.json from the colour token table.
package figma

import (
	"fmt"
	"math"

	"github.com/gnana997/figmagen/pkg/tokens"
)

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// FromRGBA converts a resolved token colour.
func FromRGBA(c tokens.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns the colour as #RRGGBB, with an alpha byte appended when the
// colour is not fully opaque.
func (c Color) Hex() string {
	r := int(math.Round(c.R * 255))
	g := int(math.Round(c.G * 255))
	b := int(math.Round(c.B * 255))
	if c.A < 1 {
		a := int(math.Round(c.A * 255))
		return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// WithAlpha returns a copy with A scaled by factor.
func (c Color) WithAlpha(factor float64) Color {
	c.A = math.Round(c.A*factor*10000) / 10000
	return c
}

// Paint represents a fill or stroke. A bound variable takes precedence over
// Color in the plugin.
type Paint struct {
	Type     string  `json:"type"`
	Visible  bool    `json:"visible"`
	Opacity  float64 `json:"opacity"`
	Color    *Color  `json:"color,omitempty"`
	Variable string  `json:"boundVariable,omitempty"`
}

// Variable scopes understood by the Figma variables API.
const (
	ScopeFrameFill   = "FRAME_FILL"
	ScopeShapeFill   = "SHAPE_FILL"
	ScopeStrokeColor = "STROKE_COLOR"
	ScopeTextFill    = "TEXT_FILL"
)

// Mode names of every colour collection.
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// VariableTypeColor is the only variable type emitted.
const VariableTypeColor = "COLOR"
