package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnana997/figmagen/pkg/figma"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

// NodeType is the design-tool node kind.
type NodeType string

const (
	NodeFrame   NodeType = "FRAME"
	NodeText    NodeType = "TEXT"
	NodeEllipse NodeType = "ELLIPSE"
	NodeVector  NodeType = "VECTOR"
)

// Layout is the auto-layout direction of a frame.
type Layout string

const (
	LayoutNone       Layout = "NONE"
	LayoutHorizontal Layout = "HORIZONTAL"
	LayoutVertical   Layout = "VERTICAL"
)

// Alignment values for primary and counter axes.
const (
	AlignMin          = "MIN"
	AlignCenter       = "CENTER"
	AlignMax          = "MAX"
	AlignSpaceBetween = "SPACE_BETWEEN"
)

// Sizing values for a frame's axes.
const (
	SizingFixed = "FIXED"
	SizingHug   = "HUG"
	SizingFill  = "FILL"
)

// Fill is a solid paint. Variable, when set, is the bound design variable;
// Color holds its resolved light value (or the direct colour).
type Fill struct {
	Variable string       `json:"variable,omitempty"`
	Color    *figma.Color `json:"color,omitempty"`
}

// TextStyle describes a text node's content and typography.
type TextStyle struct {
	Characters string  `json:"characters"`
	FontSize   float64 `json:"fontSize"`
	FontWeight float64 `json:"fontWeight"`
	Fill       *Fill   `json:"fill,omitempty"`
}

// Arc is a partial ellipse, angles in radians.
type Arc struct {
	StartingAngle float64 `json:"startingAngle"`
	EndingAngle   float64 `json:"endingAngle"`
	InnerRadius   float64 `json:"innerRadius"`
}

// Node is one layer of a component.
type Node struct {
	Name             string     `json:"name"`
	Type             NodeType   `json:"type"`
	X                float64    `json:"x,omitempty"`
	Y                float64    `json:"y,omitempty"`
	Width            float64    `json:"width,omitempty"`
	Height           float64    `json:"height,omitempty"`
	MinHeight        float64    `json:"minHeight,omitempty"`
	HorizontalSizing string     `json:"horizontalSizing,omitempty"`
	VerticalSizing   string     `json:"verticalSizing,omitempty"`
	Layout           Layout     `json:"layout,omitempty"`
	PaddingX         float64    `json:"paddingX,omitempty"`
	PaddingY         float64    `json:"paddingY,omitempty"`
	Spacing          float64    `json:"spacing,omitempty"`
	PrimaryAlign     string     `json:"primaryAlign,omitempty"`
	CounterAlign     string     `json:"counterAlign,omitempty"`
	CornerRadius     float64    `json:"cornerRadius,omitempty"`
	Fill             *Fill      `json:"fill,omitempty"`
	Stroke           *Fill      `json:"stroke,omitempty"`
	StrokeWeight     float64    `json:"strokeWeight,omitempty"`
	StrokeDashed     bool       `json:"strokeDashed,omitempty"`
	StrokeBottomOnly bool       `json:"strokeBottomOnly,omitempty"`
	Opacity          *float64   `json:"opacity,omitempty"`
	Arc              *Arc       `json:"arc,omitempty"`
	Text             *TextStyle `json:"text,omitempty"`
	Children         []Node     `json:"children,omitempty"`
}

// Find returns the first descendant (or self) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].Find(name); found != nil {
			return found
		}
	}
	return nil
}

// PropertyType is the component property kind.
type PropertyType string

const (
	PropertyVariant PropertyType = "VARIANT"
	PropertyBoolean PropertyType = "BOOLEAN"
	PropertyText    PropertyType = "TEXT"
)

// Property declares one component property of the set.
type Property struct {
	Name    string       `json:"name"`
	Type    PropertyType `json:"type"`
	Values  []string     `json:"values,omitempty"`
	Default string       `json:"default,omitempty"`
}

// Variant is one combination of property values.
type Variant struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties"`
	Root       Node              `json:"root"`
}

// ComponentSet is the full output for one component.
type ComponentSet struct {
	Component   string     `json:"component"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Properties  []Property `json:"properties"`
	Variants    []Variant  `json:"variants"`
}

// Variant returns the variant whose properties match all of props.
func (s *ComponentSet) Variant(props map[string]string) (*Variant, bool) {
	for i := range s.Variants {
		match := true
		for k, v := range props {
			if s.Variants[i].Properties[k] != v {
				match = false
				break
			}
		}
		if match {
			return &s.Variants[i], true
		}
	}
	return nil, false
}

// variantName renders "prop=value, prop=value" in axis order, skipping
// props the registry entry does not declare.
func variantName(combo map[string]string, order []string) string {
	parts := make([]string, 0, len(order))
	for _, prop := range order {
		if v := combo[prop]; v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", prop, v))
		}
	}
	return strings.Join(parts, ", ")
}

func axisNames(axes []axis) []string {
	names := make([]string, len(axes))
	for i, ax := range axes {
		names[i] = ax.prop
	}
	return names
}

// Options select prop values, e.g. {"size": "lg"}. Unset props enumerate
// every declared value.
type Options map[string]string

func sortedOptionKeys(opts Options) []string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// frame builds a frame from a parsed style. Zero-valued fields are left for
// the caller's constants.
func (c *Context) frame(name string, layout Layout, s tailwind.ParsedStyle) Node {
	n := Node{
		Name:         name,
		Type:         NodeFrame,
		Layout:       layout,
		Width:        tailwind.Value(s.Width, 0),
		Height:       tailwind.Value(s.Height, 0),
		MinHeight:    tailwind.Value(s.MinHeight, 0),
		PaddingX:     tailwind.Value(s.PaddingX, 0),
		PaddingY:     tailwind.Value(s.PaddingY, 0),
		Spacing:      tailwind.Value(s.Gap, 0),
		CornerRadius: tailwind.Value(s.BorderRadius, 0),
		Fill:         c.paint(s.FillVariable, s.FillColor, s.FillOpacity),
		Opacity:      s.Opacity,
	}

	// A border wins over a ring; both render as an inside stroke.
	switch {
	case s.BorderWidth != nil && (s.StrokeVariable != "" || s.StrokeColor != ""):
		n.Stroke = c.paint(s.StrokeVariable, s.StrokeColor, s.StrokeOpacity)
		n.StrokeWeight = *s.BorderWidth
	case s.RingVariable != "" || s.RingColor != "":
		n.Stroke = c.paint(s.RingVariable, s.RingColor, s.RingOpacity)
		n.StrokeWeight = tailwind.Value(s.RingWidth, 1)
	}
	if n.Stroke == nil {
		n.StrokeWeight = 0
	}

	if n.Width > 0 {
		n.HorizontalSizing = SizingFixed
	} else {
		n.HorizontalSizing = SizingHug
	}
	if n.Height > 0 {
		n.VerticalSizing = SizingFixed
	} else {
		n.VerticalSizing = SizingHug
	}
	return n
}

// text builds a text node; fontSize, weight and colour fall back to the
// given defaults when the style does not set them.
func (c *Context) text(name, characters string, s tailwind.ParsedStyle, fontSize, weight float64, fallback *Fill) Node {
	fill := c.paint(s.TextVariable, s.TextColor, s.TextOpacity)
	if fill == nil {
		fill = fallback
	}
	return Node{
		Name: name,
		Type: NodeText,
		Text: &TextStyle{
			Characters: characters,
			FontSize:   tailwind.Value(s.FontSize, fontSize),
			FontWeight: tailwind.Value(s.FontWeight, weight),
			Fill:       fill,
		},
	}
}

func centered(n Node) Node {
	n.PrimaryAlign = AlignCenter
	n.CounterAlign = AlignCenter
	return n
}

func enumProperty(name string, values []string, def string) Property {
	return Property{Name: name, Type: PropertyVariant, Values: values, Default: def}
}
