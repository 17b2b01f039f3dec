package generator

import "github.com/gnana997/figmagen/pkg/registry"

const (
	selectWidth        = 200
	selectFontSize     = 16
	selectFontWeight   = 400
	selectChevronSize  = 16
	selectChevronWidth = 1.5
	selectValue        = "Select an option"
)

func generateSelect(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Select)
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
		s := c.style(comp, combo, "size")

		root := c.frame("Select", LayoutHorizontal, s)
		root.Width = selectWidth
		root.HorizontalSizing = SizingFixed
		root.PrimaryAlign = AlignSpaceBetween
		root.CounterAlign = AlignCenter
		root.Children = []Node{
			c.text("Select.Value", selectValue, s, selectFontSize, selectFontWeight, c.textFill("kumo-default")),
			{
				Name:         "Select.Chevron",
				Type:         NodeVector,
				Width:        selectChevronSize,
				Height:       selectChevronSize,
				Stroke:       c.textFill("kumo-subtle"),
				StrokeWeight: selectChevronWidth,
			},
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}
