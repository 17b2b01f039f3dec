package generator

import "github.com/gnana997/figmagen/pkg/registry"

const (
	breadcrumbWeight        = 400
	breadcrumbCurrentWeight = 500
	breadcrumbFontSize      = 16
)

var breadcrumbTrail = []string{"Home", "Projects"}

func generateBreadcrumbs(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Breadcrumbs)
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

		root := c.frame("Breadcrumbs", LayoutHorizontal, s)
		root.CounterAlign = AlignCenter

		subtle := c.textFill("kumo-subtle")
		for _, label := range breadcrumbTrail {
			root.Children = append(root.Children,
				c.text("Breadcrumbs.Link", label, s, breadcrumbFontSize, breadcrumbWeight, subtle),
				c.text("Breadcrumbs.Separator", "/", s, breadcrumbFontSize, breadcrumbWeight, subtle),
			)
		}

		current := c.text("Breadcrumbs.Current", "Settings", s, breadcrumbFontSize, breadcrumbCurrentWeight, nil)
		current.Text.Fill = c.textFill("kumo-strong")
		root.Children = append(root.Children, current)

		set.addVariant(combo, axes, root)
	}
	return set, nil
}
