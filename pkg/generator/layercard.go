package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	layerCardWidth         = 320
	layerCardHeaderPadX    = 12
	layerCardHeaderPadY    = 8
	layerCardBodyPadding   = 16
	layerCardBodyRadius    = 8
	layerCardBodyMinHeight = 96
	layerCardFontSize      = 14
	layerCardHeaderWeight  = 500
	layerCardBodyWeight    = 400
)

func generateLayerCard(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.LayerCard)
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
		s := c.style(comp, combo, "variant")

		root := c.frame("LayerCard", LayoutVertical, s)
		root.Width = layerCardWidth
		root.HorizontalSizing = SizingFixed

		header := Node{
			Name:             "LayerCard.Secondary",
			Type:             NodeFrame,
			Layout:           LayoutHorizontal,
			HorizontalSizing: SizingFill,
			VerticalSizing:   SizingHug,
			PaddingX:         layerCardHeaderPadX,
			PaddingY:         layerCardHeaderPadY,
			CounterAlign:     AlignCenter,
			Children: []Node{
				c.text("Title", "Layer card", tailwind.ParsedStyle{}, layerCardFontSize, layerCardHeaderWeight, c.textFill("kumo-strong")),
			},
		}

		body := Node{
			Name:             "LayerCard.Primary",
			Type:             NodeFrame,
			Layout:           LayoutVertical,
			HorizontalSizing: SizingFill,
			VerticalSizing:   SizingHug,
			MinHeight:        layerCardBodyMinHeight,
			PaddingX:         layerCardBodyPadding,
			PaddingY:         layerCardBodyPadding,
			CornerRadius:     layerCardBodyRadius,
			Fill:             c.colorFill("kumo-base"),
			Children: []Node{
				c.text("Content", "Card content", tailwind.ParsedStyle{}, layerCardFontSize, layerCardBodyWeight, c.textFill("kumo-default")),
			},
		}
		// Flat cards draw a single outer border; layered ones outline the body too.
		if combo["variant"] != "flat" {
			body.Stroke = c.colorFill("kumo-line")
			body.StrokeWeight = 1
		}

		root.Children = []Node{header, body}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}
