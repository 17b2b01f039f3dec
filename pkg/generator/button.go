package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
)

const (
	buttonFontWeight = 500
	buttonFontSize   = 16
	buttonLabel      = "Button"
)

func generateButton(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Button)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "variant"), enumAxis(comp, "size")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		set.addVariant(combo, axes, c.buttonNode(comp, combo["variant"], combo["size"], buttonLabel))
	}
	return set, nil
}

// buttonNode renders one button. Dialog reuses it for its actions.
func (c *Context) buttonNode(comp *registry.Component, variant, size, label string) Node {
	s := c.style(comp, map[string]string{"variant": variant, "size": size}, "variant", "size")

	root := centered(c.frame("Button", LayoutHorizontal, s))
	root.HorizontalSizing = SizingHug
	root.Children = []Node{
		c.text("Label", label, s, buttonFontSize, buttonFontWeight, c.textFill("kumo-default")),
	}
	return root
}
