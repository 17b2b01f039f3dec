package generator

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/gnana997/figmagen/catalogs"
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func newTestContext(t *testing.T, strict bool) *Context {
	t.Helper()
	reg, err := registry.LoadFromBytes(catalogs.KumoRegistryJSON)
	require.NoError(t, err)
	return newContextFor(t, reg, strict)
}

func newContextFor(t *testing.T, reg *registry.Registry, strict bool) *Context {
	t.Helper()
	logger := util.NewLogger(util.LoggerConfig{Level: util.LevelError, Output: io.Discard})
	c, err := NewContext(reg, tokens.LoadEmbedded(tokens.ParseOptions{}), ContextOptions{Strict: strict, Logger: logger})
	require.NoError(t, err)
	return c
}

func buttonOnlyRegistry() *registry.Registry {
	return &registry.Registry{
		Version: "1.0",
		Components: map[string]registry.Component{
			"Button": {
				Name:     "Button",
				Category: "Action",
				Props: map[string]registry.Prop{
					"variant": {
						Type:         registry.PropTypeEnum,
						Values:       []string{"primary"},
						Classes:      map[string]string{"primary": "h-9 px-3 rounded-lg bg-kumo-brand text-white"},
						Descriptions: map[string]string{"primary": "Main action"},
						Default:      "primary",
					},
				},
			},
		},
	}
}

// --- Helpers with explicit fallback ---

func TestMeterIndicatorWidth_Proportional(t *testing.T) {
	assert.Equal(t, MeterIndicatorWidth(25)*2, MeterIndicatorWidth(50))
	for p := 0; p <= 100; p++ {
		assert.InDelta(t, float64(meterTrackWidth)*float64(p)/100, MeterIndicatorWidth(float64(p)), 1e-9)
	}
}

func TestMeterIndicatorWidth_Clamps(t *testing.T) {
	assert.Equal(t, 0.0, MeterIndicatorWidth(-10))
	assert.Equal(t, float64(meterTrackWidth), MeterIndicatorWidth(150))
	assert.Equal(t, 0.0, MeterIndicatorWidth(math.NaN()))
	assert.Equal(t, float64(meterTrackWidth), MeterIndicatorWidth(math.Inf(1)))
}

func TestInputAreaSizeDimensions_FallsBackToBase(t *testing.T) {
	base, ok := InputAreaSizeDimensions("base")
	require.True(t, ok)

	dims, ok := InputAreaSizeDimensions("unknown")
	assert.False(t, ok)
	assert.Equal(t, base, dims)

	sm, ok := InputAreaSizeDimensions("sm")
	assert.True(t, ok)
	assert.Equal(t, 64.0, sm.MinHeight)
}

func TestLoaderSizeDimensions_FallsBackToBase(t *testing.T) {
	dims, ok := LoaderSizeDimensions("invalid")
	assert.False(t, ok)
	assert.Equal(t, LoaderDimensions{Size: 24, StrokeWidth: 2.5}, dims)

	lg, ok := LoaderSizeDimensions("lg")
	assert.True(t, ok)
	assert.Equal(t, 32.0, lg.Size)
}

// --- Button ---

func TestGenerateButton_AllCombinations(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Button, nil)
	require.NoError(t, err)

	assert.Equal(t, "Button", set.Component)
	assert.Len(t, set.Variants, 5*4)
	assert.Equal(t, "variant=primary, size=xs", set.Variants[0].Name)

	v, ok := set.Variant(map[string]string{"variant": "primary", "size": "base"})
	require.True(t, ok)
	root := v.Root
	assert.Equal(t, 36.0, root.Height)
	assert.Equal(t, 12.0, root.PaddingX)
	assert.Equal(t, 8.0, root.CornerRadius)
	require.NotNil(t, root.Fill)
	assert.Equal(t, "color-kumo-brand", root.Fill.Variable)
	assert.NotNil(t, root.Fill.Color, "bound variables carry a preview colour")

	label := root.Find("Label")
	require.NotNil(t, label)
	assert.Equal(t, 16.0, label.Text.FontSize)
	assert.Equal(t, 500.0, label.Text.FontWeight)
	require.NotNil(t, label.Text.Fill.Color)
	assert.Equal(t, "#FFFFFF", label.Text.Fill.Color.Hex())
}

func TestGenerateButton_RingBecomesStroke(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Button, Options{"variant": "secondary", "size": "base"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)

	root := set.Variants[0].Root
	require.NotNil(t, root.Stroke)
	assert.Equal(t, "color-kumo-line", root.Stroke.Variable)
	assert.Equal(t, 1.0, root.StrokeWeight)
}

// --- Unknown options ---

func TestGenerate_UnknownOption_LenientFallsBack(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Button, Options{"size": "huge"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 5)
	for _, v := range set.Variants {
		assert.Equal(t, "base", v.Properties["size"])
	}
}

func TestGenerate_UnknownOption_Strict(t *testing.T) {
	_, err := Generate(newTestContext(t, true), registry.Button, Options{"size": "huge"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))

	var uo *UnknownOptionError
	require.ErrorAs(t, err, &uo)
	assert.Equal(t, "size", uo.Option)
	assert.Equal(t, "huge", uo.Value)
	assert.Contains(t, uo.Valid, "base")
}

func TestGenerate_UnknownOptionKey(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Loader, Options{"color": "red"})
	require.NoError(t, err)
	assert.Len(t, set.Variants, 3)

	_, err = Generate(newTestContext(t, true), registry.Loader, Options{"color": "red"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestGenerate_BooleanOptionValidated(t *testing.T) {
	_, err := Generate(newTestContext(t, true), registry.Switch, Options{"checked": "yes"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	set, err := Generate(newTestContext(t, false), registry.Switch, Options{"checked": "yes", "size": "base"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)
	assert.Equal(t, "false", set.Variants[0].Properties["checked"])
}

// --- Registry fallback ---

func TestGenerate_MissingEntryUsesBuiltinLayout(t *testing.T) {
	c := newContextFor(t, buttonOnlyRegistry(), false)

	set, err := Generate(c, registry.Tabs, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tabs", set.Component)
	assert.Len(t, set.Variants, 2)

	set, err = Generate(c, registry.Button, nil)
	require.NoError(t, err)
	require.Len(t, set.Variants, 1, "project entry wins over the built-in one")
	assert.Equal(t, "variant=primary", set.Variants[0].Name)
}

func TestGenerate_MissingEntryStrict(t *testing.T) {
	c := newContextFor(t, buttonOnlyRegistry(), true)

	_, err := Generate(c, registry.Tabs, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrComponentNotFound))
}

func TestGenerate_UnknownComponent(t *testing.T) {
	_, err := Generate(newTestContext(t, false), registry.ComponentName("Carousel"), nil)
	assert.ErrorIs(t, err, registry.ErrComponentNotFound)
}

// --- Per-component layout ---

func TestGenerateDialog_ComposesButtons(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Dialog, Options{"size": "base"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)

	root := set.Variants[0].Root
	assert.Equal(t, LayoutVertical, root.Layout)
	assert.Equal(t, 480.0, root.Width)
	assert.Equal(t, 24.0, root.PaddingX)

	actions := root.Find("Dialog.Actions")
	require.NotNil(t, actions)
	require.Len(t, actions.Children, 2)
	assert.Equal(t, "Cancel", actions.Children[0].Find("Label").Text.Characters)
	assert.Equal(t, "Confirm", actions.Children[1].Find("Label").Text.Characters)
	assert.Equal(t, "color-kumo-brand", actions.Children[1].Fill.Variable)
}

func TestGenerateInputArea_UsesRegistryMinHeight(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.InputArea, Options{"size": "lg", "variant": "error"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)

	root := set.Variants[0].Root
	assert.Equal(t, 96.0, root.MinHeight)
	assert.Equal(t, 16.0, root.PaddingX)
	require.NotNil(t, root.Stroke)
	assert.Equal(t, "color-kumo-danger", root.Stroke.Variable)

	placeholder := root.Find("Placeholder")
	require.NotNil(t, placeholder)
	assert.Equal(t, "text-color-kumo-inactive", placeholder.Text.Fill.Variable)
}

func TestGenerateLoader_Arcs(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Loader, Options{"size": "lg"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)

	root := set.Variants[0].Root
	assert.Equal(t, 32.0, root.Width)
	indicator := root.Find("Indicator")
	require.NotNil(t, indicator)
	require.NotNil(t, indicator.Arc)
	assert.InDelta(t, 1-2*3.0/32, indicator.Arc.InnerRadius, 1e-9)
	assert.Equal(t, "color-kumo-brand", indicator.Fill.Variable)
}

func TestGenerateMeter(t *testing.T) {
	c := newTestContext(t, false)

	set, err := Generate(c, registry.Meter, nil)
	require.NoError(t, err)
	assert.Len(t, set.Variants, len(meterValues))
	assert.Equal(t, "value", set.Properties[0].Name)

	set, err = Generate(c, registry.Meter, Options{"value": "50", "label": "Quota"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)
	root := set.Variants[0].Root
	assert.Equal(t, 120.0, root.Find("Meter.Indicator").Width)
	assert.Equal(t, "Quota", root.Find("Meter.Label").Text.Characters)
	assert.Equal(t, "50%", root.Find("Meter.Value").Text.Characters)
}

func TestGenerateMeter_NonNumericValue(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Meter, Options{"value": "half"})
	require.NoError(t, err)
	assert.Len(t, set.Variants, len(meterValues))

	_, err = Generate(newTestContext(t, true), registry.Meter, Options{"value": "half"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestGenerateMeter_NonFiniteValue(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		set, err := Generate(newTestContext(t, false), registry.Meter, Options{"value": v})
		require.NoError(t, err, v)
		assert.Len(t, set.Variants, len(meterValues), v)
		_, err = json.Marshal(set)
		require.NoError(t, err, v)

		_, err = Generate(newTestContext(t, true), registry.Meter, Options{"value": v})
		assert.ErrorIs(t, err, ErrUnknownOption, v)
	}
}

func TestGenerateSwitch_ThumbPosition(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Switch, Options{"size": "base"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 2)

	off, ok := set.Variant(map[string]string{"checked": "false"})
	require.True(t, ok)
	on, ok := set.Variant(map[string]string{"checked": "true"})
	require.True(t, ok)

	assert.Equal(t, 36.0, on.Root.Width)
	assert.Equal(t, 20.0, on.Root.Height)
	assert.Equal(t, 2.0, off.Root.Children[0].X)
	assert.Equal(t, 18.0, on.Root.Children[0].X)
	assert.Equal(t, 16.0, on.Root.Children[0].Width)
	assert.Equal(t, "color-kumo-brand", on.Root.Fill.Variable)
	assert.Equal(t, "color-kumo-fill", off.Root.Fill.Variable)
}

func TestGenerateTable_Layouts(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Table, nil)
	require.NoError(t, err)
	require.Len(t, set.Variants, 2)

	fixed, ok := set.Variant(map[string]string{"layout": "fixed"})
	require.True(t, ok)
	auto, ok := set.Variant(map[string]string{"layout": "auto"})
	require.True(t, ok)

	require.Len(t, fixed.Root.Children, 1+len(tableRows))
	assert.Equal(t, float64(tableColumnWidth), fixed.Root.Children[0].Children[0].Width)
	assert.Equal(t, SizingHug, auto.Root.Children[0].Children[0].HorizontalSizing)
	assert.True(t, auto.Root.Children[1].StrokeBottomOnly)
}

func TestGenerateTabs_Underline(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Tabs, Options{"variant": "underline"})
	require.NoError(t, err)
	require.Len(t, set.Variants, 1)

	root := set.Variants[0].Root
	require.NotNil(t, root.Stroke)
	assert.True(t, root.StrokeBottomOnly)
	assert.Equal(t, "color-kumo-line", root.Stroke.Variable)

	selected := root.Children[0]
	require.NotNil(t, selected.Stroke)
	assert.Equal(t, "color-kumo-brand", selected.Stroke.Variable)
	assert.Nil(t, root.Children[1].Stroke)
}

func TestGenerateBadge_BetaIsDashed(t *testing.T) {
	set, err := Generate(newTestContext(t, false), registry.Badge, nil)
	require.NoError(t, err)

	beta, ok := set.Variant(map[string]string{"variant": "beta"})
	require.True(t, ok)
	assert.True(t, beta.Root.StrokeDashed)
	assert.Equal(t, "color-kumo-info", beta.Root.Stroke.Variable)

	primary, ok := set.Variant(map[string]string{"variant": "primary"})
	require.True(t, ok)
	assert.False(t, primary.Root.StrokeDashed)
	assert.Equal(t, float64(badgeHeight), primary.Root.Height)
}

// --- GenerateAll / output ---

func TestGenerateAll(t *testing.T) {
	sets, err := GenerateAll(newTestContext(t, true))
	require.NoError(t, err)

	names := registry.ComponentNames()
	require.Len(t, sets, len(names))
	for i, set := range sets {
		assert.Equal(t, string(names[i]), set.Component)
		assert.NotEmpty(t, set.Variants, set.Component)
	}
}

func TestWriteComponents(t *testing.T) {
	sets, err := GenerateAll(newTestContext(t, false))
	require.NoError(t, err)

	dir := t.TempDir()
	res, err := WriteComponents(dir, sets)
	require.NoError(t, err)
	assert.Len(t, res.Files, len(sets)+1)
	assert.Positive(t, res.Bytes)

	set, err := ReadComponentSet(filepath.Join(dir, "components", "Button.json"))
	require.NoError(t, err)
	assert.Equal(t, "Button", set.Component)
	assert.Len(t, set.Variants, 20)
}
