package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	inputWidth       = 240
	inputFontSize    = 16
	inputFontWeight  = 400
	inputPlaceholder = "Placeholder"
)

func generateInput(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Input)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "size"), enumAxis(comp, "variant")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		s := c.style(comp, combo, "size", "variant")

		root := c.frame("Input", LayoutHorizontal, s)
		root.Width = inputWidth
		root.HorizontalSizing = SizingFixed
		root.CounterAlign = AlignCenter
		root.Children = []Node{c.placeholder(s, inputFontSize)}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}

// placeholder renders muted hint text; only the type scale comes from s.
func (c *Context) placeholder(s tailwind.ParsedStyle, fontSize float64) Node {
	typo := tailwind.ParsedStyle{FontSize: s.FontSize, FontWeight: s.FontWeight}
	return c.text("Placeholder", inputPlaceholder, typo, fontSize, inputFontWeight, c.textFill("kumo-inactive"))
}

// InputAreaDimensions are the fixed geometry of one InputArea size.
type InputAreaDimensions struct {
	MinHeight    float64 `json:"minHeight"`
	PaddingX     float64 `json:"paddingX"`
	PaddingY     float64 `json:"paddingY"`
	FontSize     float64 `json:"fontSize"`
	CornerRadius float64 `json:"cornerRadius"`
}

var inputAreaSizes = map[string]InputAreaDimensions{
	"sm":   {MinHeight: 64, PaddingX: 8, PaddingY: 6, FontSize: 12, CornerRadius: 6},
	"base": {MinHeight: 80, PaddingX: 12, PaddingY: 8, FontSize: 16, CornerRadius: 8},
	"lg":   {MinHeight: 96, PaddingX: 16, PaddingY: 12, FontSize: 16, CornerRadius: 8},
}

// InputAreaSizeDimensions returns the dimensions for size. Unknown sizes get
// the base dimensions and ok=false.
func InputAreaSizeDimensions(size string) (dims InputAreaDimensions, ok bool) {
	if d, found := inputAreaSizes[size]; found {
		return d, true
	}
	return inputAreaSizes["base"], false
}

const inputAreaWidth = 320

func generateInputArea(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.InputArea)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "size"), enumAxis(comp, "variant")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		dims, ok := InputAreaSizeDimensions(combo["size"])
		if !ok {
			c.Logger.Debug("no InputArea dimensions for size, using base", "size", combo["size"])
		}
		s := c.style(comp, combo, "size", "variant")

		root := c.frame("InputArea", LayoutVertical, s)
		root.Width = inputAreaWidth
		root.HorizontalSizing = SizingFixed
		root.MinHeight = tailwind.Value(s.MinHeight, dims.MinHeight)
		root.PaddingX = tailwind.Value(s.PaddingX, dims.PaddingX)
		root.PaddingY = tailwind.Value(s.PaddingY, dims.PaddingY)
		root.CornerRadius = tailwind.Value(s.BorderRadius, dims.CornerRadius)
		root.Children = []Node{c.placeholder(s, dims.FontSize)}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}
