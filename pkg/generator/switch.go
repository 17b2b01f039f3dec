package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

// Fallback track size (base) and the gap between track edge and thumb.
const (
	switchWidth  = 36
	switchHeight = 20
	switchInset  = 2
)

func generateSwitch(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Switch)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "size"), boolAxis("checked")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		s := c.style(comp, combo, "size")
		checked := combo["checked"] == "true"

		width := tailwind.Value(s.Width, switchWidth)
		height := tailwind.Value(s.Height, switchHeight)
		thumb := height - 2*switchInset

		root := c.frame("Switch", LayoutNone, s)
		root.Width, root.Height = width, height
		root.HorizontalSizing, root.VerticalSizing = SizingFixed, SizingFixed
		root.CornerRadius = tailwind.Value(s.BorderRadius, height/2)
		if checked {
			root.Fill = c.colorFill("kumo-brand")
		} else {
			root.Fill = c.colorFill("kumo-fill")
		}

		x := float64(switchInset)
		if checked {
			x = width - thumb - switchInset
		}
		root.Children = []Node{{
			Name:   "Switch.Thumb",
			Type:   NodeEllipse,
			X:      x,
			Y:      switchInset,
			Width:  thumb,
			Height: thumb,
			Fill:   c.colorFill("kumo-base"),
		}}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}

