package tailwind

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/figmagen/pkg/tokens"
)

// --- helpers ---

type stubTokens struct {
	colors map[string]bool
	text   map[string]bool
}

func (s stubTokens) HasColor(name string) bool     { return s.colors[name] }
func (s stubTokens) HasTextColor(name string) bool { return s.text[name] }

func newTestParser() *Parser {
	set := stubTokens{
		colors: map[string]bool{"kumo-brand": true, "kumo-line": true, "kumo-ring": true, "kumo-base": true, "kumo-danger": true},
		text:   map[string]bool{"kumo-default": true, "kumo-danger": true},
	}
	return NewParser(set, DefaultParserConfig(), nil)
}

func f(v float64) *float64 { return &v }

// --- geometry ---

func TestParse_ButtonScenario(t *testing.T) {
	got := newTestParser().Parse("h-9 px-3 rounded-lg bg-kumo-brand")
	want := ParsedStyle{
		Height:       f(36),
		PaddingX:     f(12),
		BorderRadius: f(8),
		FillVariable: "color-kumo-brand",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ScenarioJSON(t *testing.T) {
	data, err := json.Marshal(newTestParser().Parse("h-9 px-3 rounded-lg bg-kumo-brand"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"height":36,"paddingX":12,"borderRadius":8,"fillVariable":"color-kumo-brand"}`, string(data))
}

func TestParse_Spacing(t *testing.T) {
	p := newTestParser()

	s := p.Parse("w-px h-0.5 min-h-20 py-1.5 gap-2 p-4")
	assert.Equal(t, 1.0, *s.Width)
	assert.Equal(t, 2.0, *s.Height)
	assert.Equal(t, 80.0, *s.MinHeight)
	assert.Equal(t, 16.0, *s.PaddingX, "p- sets both axes and comes last")
	assert.Equal(t, 16.0, *s.PaddingY)
	assert.Equal(t, 8.0, *s.Gap)

	s = p.Parse("size-6 w-[480px] px-[0.5rem]")
	assert.Equal(t, 24.0, *s.Height)
	assert.Equal(t, 480.0, *s.Width)
	assert.Equal(t, 8.0, *s.PaddingX)

	s = p.Parse("w-full h-auto px-0.25")
	assert.Nil(t, s.Width)
	assert.Nil(t, s.Height)
	assert.Nil(t, s.PaddingX)
}

func TestParse_RadiusTypographyBorders(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, 4.0, *p.Parse("rounded").BorderRadius)
	assert.Equal(t, 9999.0, *p.Parse("rounded-full").BorderRadius)
	assert.Equal(t, 10.0, *p.Parse("rounded-[10px]").BorderRadius)
	assert.Nil(t, p.Parse("rounded-t-lg").BorderRadius)

	s := p.Parse("text-sm/6 font-semibold")
	assert.Equal(t, 14.0, *s.FontSize)
	assert.Equal(t, 600.0, *s.FontWeight)
	assert.Empty(t, s.TextVariable)

	assert.Equal(t, 13.0, *p.Parse("text-[13px]").FontSize)

	s = p.Parse("border border-kumo-line ring ring-kumo-ring")
	assert.Equal(t, 1.0, *s.BorderWidth)
	assert.Equal(t, "color-kumo-line", s.StrokeVariable)
	assert.Equal(t, 1.0, *s.RingWidth)
	assert.Equal(t, "color-kumo-ring", s.RingVariable)

	s = p.Parse("border-2 border-b border-dashed ring-offset-2 ring-inset")
	assert.Equal(t, 2.0, *s.BorderWidth)
	assert.Empty(t, s.StrokeVariable)
	assert.Empty(t, s.RingVariable)
	assert.Nil(t, s.RingWidth)

	assert.Equal(t, 0.5, *p.Parse("opacity-50").Opacity)
}

// --- colours ---

func TestParse_TextColorPrefersTextToken(t *testing.T) {
	p := newTestParser()
	assert.Equal(t, "text-color-kumo-default", p.Parse("text-kumo-default").TextVariable)
	assert.Equal(t, "text-color-kumo-danger", p.Parse("text-kumo-danger").TextVariable)
	assert.Equal(t, "color-kumo-brand", p.Parse("text-kumo-brand").TextVariable, "falls back to the color token")
}

func TestParse_BuiltinColors(t *testing.T) {
	p := newTestParser()

	s := p.Parse("bg-white text-white border-transparent")
	assert.Equal(t, "white", s.FillColor)
	assert.Empty(t, s.FillVariable)
	assert.Equal(t, "white", s.TextColor)
	assert.True(t, s.IsWhiteText)
	assert.Equal(t, "transparent", s.StrokeColor)

	s = p.Parse("bg-black/40")
	assert.Equal(t, "black", s.FillColor)
	assert.Equal(t, 0.4, *s.FillOpacity)

	assert.Equal(t, "#ff0000", p.Parse("bg-[#ff0000]").FillColor)
}

func TestParse_OpacityModifierBindsVariable(t *testing.T) {
	s := newTestParser().Parse("bg-kumo-danger/90 text-kumo-default/80")
	assert.Equal(t, "color-kumo-danger-90", s.FillVariable)
	assert.Equal(t, 0.9, *s.FillOpacity)
	assert.Equal(t, "color-kumo-default-80", s.TextVariable)
	assert.Equal(t, 0.8, *s.TextOpacity)
}

func TestParse_UnknownTokensAndVariantsIgnored(t *testing.T) {
	p := newTestParser()

	s := p.Parse("bg-blue-600 text-neutral-500 border-red-500 flex items-center")
	assert.Equal(t, ParsedStyle{}, s)

	s = p.Parse("bg-kumo-base hover:bg-kumo-brand dark:bg-kumo-line data-[state=open]:h-10 sm:px-4")
	assert.Equal(t, "color-kumo-base", s.FillVariable)
	assert.Nil(t, s.Height)
	assert.Nil(t, s.PaddingX)

	s = p.Parse("!h-9 bg-kumo-brand!")
	assert.Equal(t, 36.0, *s.Height)
	assert.Equal(t, "color-kumo-brand", s.FillVariable)
}

func TestParse_NonFiniteValuesLeaveFieldsUnset(t *testing.T) {
	s := newTestParser().Parse("h-[Infpx] w-[NaN] min-h-[-Infrem] p-NaN gap-Inf rounded-[NaNpx] bg-kumo-brand")
	assert.Equal(t, ParsedStyle{FillVariable: "color-kumo-brand"}, s)

	_, err := json.Marshal(s)
	require.NoError(t, err)
}

func TestParse_WithTokenTable(t *testing.T) {
	table := tokens.LoadEmbedded(tokens.ParseOptions{})
	p := NewParser(table, DefaultParserConfig(), nil)

	s := p.Parse("bg-kumo-elevated text-kumo-subtle ring-kumo-line")
	assert.Equal(t, "color-kumo-elevated", s.FillVariable)
	assert.Equal(t, "text-color-kumo-subtle", s.TextVariable)
	assert.Equal(t, "color-kumo-line", s.RingVariable)

	assert.Empty(t, p.Parse("bg-blue-600").FillVariable)
}

// --- Merge ---

func TestParsedStyle_Merge(t *testing.T) {
	p := newTestParser()
	base := p.Parse("h-9 px-3 bg-kumo-base text-kumo-default")
	over := p.Parse("h-10 bg-kumo-brand text-white")

	merged := base.Merge(over)
	assert.Equal(t, 40.0, *merged.Height)
	assert.Equal(t, 12.0, *merged.PaddingX)
	assert.Equal(t, "color-kumo-brand", merged.FillVariable)
	assert.Equal(t, "white", merged.TextColor)
	assert.Empty(t, merged.TextVariable)
	assert.True(t, merged.IsWhiteText)

	// Inputs are untouched.
	assert.Equal(t, 36.0, *base.Height)
}

// --- cache ---

func TestParser_CacheHitsAndIsolation(t *testing.T) {
	p := newTestParser()

	first := p.Parse("h-9  px-3")
	*first.Height = 1000

	second := p.Parse("h-9 px-3")
	assert.Equal(t, 36.0, *second.Height, "cached values must not alias caller copies")

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestParser_CacheEviction(t *testing.T) {
	p := NewParser(stubTokens{}, ParserConfig{CacheSize: 2}, nil)
	p.Parse("h-1")
	p.Parse("h-2")
	p.Parse("h-3")

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Entries)

	p.Purge()
	assert.Equal(t, 0, p.Stats().Entries)
}

func TestParser_CacheDisabled(t *testing.T) {
	p := NewParser(stubTokens{}, ParserConfig{CacheSize: -1}, nil)
	p.Parse("h-1")
	p.Parse("h-1")
	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 0, stats.Entries)
}

func TestParser_Concurrent(t *testing.T) {
	p := newTestParser()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := p.Parse("h-9 px-3 rounded-lg bg-kumo-brand")
			assert.Equal(t, 36.0, *s.Height)
		}()
	}
	wg.Wait()
}
