package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	tableColumnWidth  = 160
	tableCellPadX     = 12
	tableCellPadY     = 8
	tableFontSize     = 16
	tableHeaderWeight = 500
	tableCellWeight   = 400
)

var (
	tableColumns = []string{"Name", "Status", "Updated"}
	tableRows    = [][]string{
		{"api-gateway", "Active", "2 hours ago"},
		{"billing-worker", "Paused", "Yesterday"},
		{"edge-cache", "Active", "3 days ago"},
	}
)

func generateTable(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Table)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "layout")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		s := c.style(comp, combo, "layout")
		fixed := combo["layout"] == "fixed"

		root := c.frame("Table", LayoutVertical, s)
		root.Children = append(root.Children,
			c.tableRow("Table.Header", tableColumns, s, fixed, tableHeaderWeight, c.colorFill("kumo-recessed")))
		for _, cells := range tableRows {
			root.Children = append(root.Children, c.tableRow("Table.Row", cells, s, fixed, tableCellWeight, nil))
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}

// tableRow renders one row. Fixed layouts give every column the same width;
// auto layouts let cells hug their content.
func (c *Context) tableRow(name string, cells []string, s tailwind.ParsedStyle, fixed bool, weight float64, fill *Fill) Node {
	row := Node{
		Name:             name,
		Type:             NodeFrame,
		Layout:           LayoutHorizontal,
		HorizontalSizing: SizingFill,
		VerticalSizing:   SizingHug,
		Fill:             fill,
		Stroke:           c.colorFill("kumo-line"),
		StrokeWeight:     1,
		StrokeBottomOnly: true,
	}
	for _, text := range cells {
		cell := Node{
			Name:             "Table.Cell",
			Type:             NodeFrame,
			Layout:           LayoutHorizontal,
			HorizontalSizing: SizingHug,
			VerticalSizing:   SizingHug,
			PaddingX:         tableCellPadX,
			PaddingY:         tableCellPadY,
			CounterAlign:     AlignCenter,
			Children: []Node{
				c.text("Label", text, s, tableFontSize, weight, c.textFill("kumo-default")),
			},
		}
		if fixed {
			cell.Width = tableColumnWidth
			cell.HorizontalSizing = SizingFixed
		}
		row.Children = append(row.Children, cell)
	}
	return row
}
