package generator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	meterTrackWidth  = 240
	meterTrackHeight = 8
	meterRadius      = 9999
	meterSpacing     = 6
	meterFontSize    = 14
	meterLabelWeight = 500
	meterValueWeight = 400
	meterLabel       = "Storage used"
)

var meterValues = []string{"0", "25", "50", "75", "100"}

// MeterIndicatorWidth is the filled width of the track for percent, clamped
// to 0..100.
func MeterIndicatorWidth(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	return meterTrackWidth * percent / 100
}

func generateMeter(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Meter)
	if err != nil {
		return nil, err
	}

	opts, label, err := c.meterOptions(comp, opts)
	if err != nil {
		return nil, err
	}

	axes := []axis{{prop: "value", values: meterValues}}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	set.Properties = append([]Property{enumProperty("value", meterValues, "50")}, withoutProperty(set.Properties, "value")...)
	for _, combo := range combos {
		percent, _ := strconv.ParseFloat(combo["value"], 64)
		set.addVariant(combo, axes, c.meterNode(label, percent))
	}
	return set, nil
}

// meterOptions validates the numeric value and lifts the label out of opts.
func (c *Context) meterOptions(comp *registry.Component, opts Options) (Options, string, error) {
	label := meterLabel
	if comp.Props["label"].Default != "" {
		label = comp.Props["label"].Default
	}

	out := make(Options, len(opts))
	for k, v := range opts {
		switch k {
		case "label":
			label = v
		case "value":
			if n, err := strconv.ParseFloat(v, 64); err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
				if c.Strict {
					return nil, "", &UnknownOptionError{Component: comp.Name, Option: k, Value: v}
				}
				c.Logger.Warn("meter value is not a number, enumerating defaults", "value", v)
				continue
			}
			out[k] = v
		default:
			out[k] = v
		}
	}
	return out, label, nil
}

func (c *Context) meterNode(label string, percent float64) Node {
	none := tailwind.ParsedStyle{}

	indicator := Node{
		Name:             "Meter.Indicator",
		Type:             NodeFrame,
		Layout:           LayoutNone,
		Width:            MeterIndicatorWidth(percent),
		Height:           meterTrackHeight,
		HorizontalSizing: SizingFixed,
		VerticalSizing:   SizingFixed,
		CornerRadius:     meterRadius,
		Fill:             c.colorFill("kumo-brand"),
	}

	return Node{
		Name:             "Meter",
		Type:             NodeFrame,
		Layout:           LayoutVertical,
		Width:            meterTrackWidth,
		HorizontalSizing: SizingFixed,
		VerticalSizing:   SizingHug,
		Spacing:          meterSpacing,
		Children: []Node{
			{
				Name:             "Meter.Header",
				Type:             NodeFrame,
				Layout:           LayoutHorizontal,
				HorizontalSizing: SizingFill,
				VerticalSizing:   SizingHug,
				PrimaryAlign:     AlignSpaceBetween,
				Children: []Node{
					c.text("Meter.Label", label, none, meterFontSize, meterLabelWeight, c.textFill("kumo-default")),
					c.text("Meter.Value", fmt.Sprintf("%g%%", percent), none, meterFontSize, meterValueWeight, c.textFill("kumo-subtle")),
				},
			},
			{
				Name:             "Meter.Track",
				Type:             NodeFrame,
				Layout:           LayoutNone,
				Width:            meterTrackWidth,
				Height:           meterTrackHeight,
				HorizontalSizing: SizingFixed,
				VerticalSizing:   SizingFixed,
				CornerRadius:     meterRadius,
				Fill:             c.colorFill("kumo-fill"),
				Children:         []Node{indicator},
			},
		},
	}
}

func withoutProperty(props []Property, name string) []Property {
	out := props[:0:0]
	for _, p := range props {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}
