package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"white", RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"transparent", RGBA{}},
		{"#fff", RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"#000000", RGBA{A: 1}},
		{"#ff000080", RGBA{R: 1, A: 0.502}},
		{"rgb(255 0 0)", RGBA{R: 1, A: 1}},
		{"rgb(0 0 0 / 0.4)", RGBA{A: 0.4}},
		{"rgba(0, 0, 255, 0.5)", RGBA{B: 1, A: 0.5}},
		{"rgb(100% 0% 0% / 50%)", RGBA{R: 1, A: 0.5}},
		{"hsl(0 100% 50%)", RGBA{R: 1, A: 1}},
		{"oklch(100% 0 0)", RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"oklch(0% 0 0)", RGBA{A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 0.001)
			assert.InDelta(t, tt.want.G, got.G, 0.001)
			assert.InDelta(t, tt.want.B, got.B, 0.001)
			assert.InDelta(t, tt.want.A, got.A, 0.001)
		})
	}
}

func TestParseColor_OklchMidGray(t *testing.T) {
	c, err := ParseColor("oklch(55.6% 0 0)")
	require.NoError(t, err)
	assert.InDelta(t, c.R, c.G, 0.001)
	assert.InDelta(t, c.G, c.B, 0.001)
	assert.Greater(t, c.R, 0.3)
	assert.Less(t, c.R, 0.6)
}

func TestParseColor_Errors(t *testing.T) {
	for _, in := range []string{"currentColor", "#12", "rgb(1 2)", "color-mix(in srgb, red, blue)", "var(--x)", "rgb(nan 0 0)", "oklch(inf 0 0)", "rgb(0 0 0 / nan)"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrUnresolvedColor, in)
	}
}

func TestResolve_LightDarkModes(t *testing.T) {
	table := NewTable("")
	light, err := table.Resolve("light-dark(#ffffff, #000000)", ModeLight, "")
	require.NoError(t, err)
	dark, err := table.Resolve("light-dark(#ffffff, #000000)", ModeDark, "")
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 1, G: 1, B: 1, A: 1}, light)
	assert.Equal(t, RGBA{A: 1}, dark)
}
