package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	tabPadX        = 12
	tabRadius      = 6
	tabFontSize    = 14
	tabFontWeight  = 500
	tabIndicator   = 2
	tabsUnderline  = "underline"
	tabsSelectedIx = 0
)

var tabLabels = []string{"Overview", "Analytics", "Settings"}

func generateTabs(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Tabs)
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
		underline := combo["variant"] == tabsUnderline

		root := c.frame("Tabs", LayoutHorizontal, s)
		root.CounterAlign = AlignCenter
		if hasClass(classes, "border-b") {
			root.Stroke = c.paint(s.StrokeVariable, s.StrokeColor, s.StrokeOpacity)
			root.StrokeWeight = 1
			root.StrokeBottomOnly = root.Stroke != nil
		}

		for i, label := range tabLabels {
			root.Children = append(root.Children, c.tab(label, i == tabsSelectedIx, underline))
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}

func (c *Context) tab(label string, selected, underline bool) Node {
	n := Node{
		Name:             "Tabs.Tab",
		Type:             NodeFrame,
		Layout:           LayoutHorizontal,
		HorizontalSizing: SizingHug,
		VerticalSizing:   SizingFill,
		PaddingX:         tabPadX,
		PrimaryAlign:     AlignCenter,
		CounterAlign:     AlignCenter,
	}

	textColor := "kumo-subtle"
	if selected {
		textColor = "kumo-strong"
		if underline {
			n.Stroke = c.colorFill("kumo-brand")
			n.StrokeWeight = tabIndicator
			n.StrokeBottomOnly = true
		} else {
			n.CornerRadius = tabRadius
			n.Fill = c.colorFill("kumo-base")
			n.Stroke = c.colorFill("kumo-line")
			n.StrokeWeight = 1
		}
	}
	if underline {
		n.PaddingX = 0
	}

	n.Children = []Node{
		c.text("Label", label, tailwind.ParsedStyle{}, tabFontSize, tabFontWeight, c.textFill(textColor)),
	}
	return n
}
