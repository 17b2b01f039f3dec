package generator

import "github.com/gnana997/figmagen/pkg/registry"

const (
	badgeHeight   = 20
	badgePaddingX = 8
	badgeRadius   = 9999
	badgeFontSize = 12
	badgeWeight   = 500
)

func generateBadge(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Badge)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "variant")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		classes, _, _ := comp.Classes("variant", combo["variant"])
		s := c.Parser.Parse(classes)

		root := centered(c.frame("Badge", LayoutHorizontal, s))
		root.Height = badgeHeight
		root.VerticalSizing = SizingFixed
		root.PaddingX = badgePaddingX
		root.CornerRadius = badgeRadius
		root.StrokeDashed = hasClass(classes, "border-dashed")
		root.Children = []Node{
			c.text("Label", "Badge", s, badgeFontSize, badgeWeight, c.textFill("kumo-default")),
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}
