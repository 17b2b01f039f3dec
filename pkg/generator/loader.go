package generator

import (
	"math"

	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

// LoaderDimensions are the spinner diameter and ring thickness for a size.
type LoaderDimensions struct {
	Size        float64 `json:"size"`
	StrokeWidth float64 `json:"strokeWidth"`
}

var loaderSizes = map[string]LoaderDimensions{
	"sm":   {Size: 16, StrokeWidth: 2},
	"base": {Size: 24, StrokeWidth: 2.5},
	"lg":   {Size: 32, StrokeWidth: 3},
}

// LoaderSizeDimensions returns the dimensions for size. Unknown sizes get the
// base dimensions and ok=false.
func LoaderSizeDimensions(size string) (dims LoaderDimensions, ok bool) {
	if d, found := loaderSizes[size]; found {
		return d, true
	}
	return loaderSizes["base"], false
}

// The indicator covers three quarters of the ring.
const loaderSweep = 1.5 * math.Pi

func generateLoader(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Loader)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "size")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		dims, ok := LoaderSizeDimensions(combo["size"])
		if !ok {
			c.Logger.Debug("no Loader dimensions for size, using base", "size", combo["size"])
		}
		s := c.style(comp, combo, "size")
		size := tailwind.Value(s.Width, dims.Size)
		inner := 1 - 2*dims.StrokeWidth/size

		root := c.frame("Loader", LayoutNone, s)
		root.Width, root.Height = size, size
		root.HorizontalSizing, root.VerticalSizing = SizingFixed, SizingFixed
		root.Children = []Node{
			{
				Name:   "Track",
				Type:   NodeEllipse,
				Width:  size,
				Height: size,
				Fill:   c.colorFill("kumo-fill"),
				Arc:    &Arc{StartingAngle: 0, EndingAngle: 2 * math.Pi, InnerRadius: inner},
			},
			{
				Name:   "Indicator",
				Type:   NodeEllipse,
				Width:  size,
				Height: size,
				Fill:   c.colorFill("kumo-brand"),
				Arc:    &Arc{StartingAngle: 0, EndingAngle: loaderSweep, InnerRadius: inner},
			},
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}
