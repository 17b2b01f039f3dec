package tokens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// maxVarDepth bounds var() chains so reference cycles terminate.
const maxVarDepth = 16

// Resolve turns a CSS colour value into RGBA. var() references are looked up
// in the table (theme overrides first) and light-dark() picks the side named
// by mode.
func (t *Table) Resolve(value string, mode Mode, theme string) (RGBA, error) {
	return t.resolve(value, mode, theme, 0)
}

func (t *Table) resolve(value string, mode Mode, theme string, depth int) (RGBA, error) {
	v := strings.TrimSpace(value)
	if depth > maxVarDepth {
		return RGBA{}, &UnresolvedColorError{Value: value, Reason: "var() chain too deep"}
	}

	if light, dark, ok := splitLightDark(v); ok {
		if mode == ModeDark {
			return t.resolve(dark, mode, theme, depth+1)
		}
		return t.resolve(light, mode, theme, depth+1)
	}

	if fn, args, ok := splitFunction(v); ok && fn == "var" {
		parts := splitTopLevel(args, ',')
		prop := strings.TrimSpace(parts[0])
		if tok, found := t.lookupProperty(prop, theme); found {
			next := tok.Light
			if mode == ModeDark {
				next = tok.Dark
			}
			return t.resolve(next, mode, theme, depth+1)
		}
		if len(parts) > 1 {
			return t.resolve(strings.Join(parts[1:], ","), mode, theme, depth+1)
		}
		return RGBA{}, &UnresolvedColorError{Value: value, Reason: "undefined property " + prop}
	}

	return ParseColor(v)
}

// ParseColor parses a literal CSS colour: hex, rgb()/rgba(), hsl()/hsla(),
// oklch() and the keywords white, black and transparent.
func ParseColor(value string) (RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(value))

	switch v {
	case "white":
		return RGBA{R: 1, G: 1, B: 1, A: 1}, nil
	case "black":
		return RGBA{A: 1}, nil
	case "transparent":
		return RGBA{}, nil
	}

	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}

	fn, args, ok := splitFunction(v)
	if !ok {
		return RGBA{}, &UnresolvedColorError{Value: value, Reason: "unsupported syntax"}
	}

	channels, alpha, err := splitChannels(args)
	if err != nil || len(channels) != 3 {
		return RGBA{}, &UnresolvedColorError{Value: value, Reason: "expected three channels"}
	}

	var c colorful.Color
	switch fn {
	case "rgb", "rgba":
		var rgb [3]float64
		for i, ch := range channels {
			n, err := parseNumber(ch, 255)
			if err != nil {
				return RGBA{}, &UnresolvedColorError{Value: value, Reason: err.Error()}
			}
			rgb[i] = n / 255
		}
		c = colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	case "hsl", "hsla":
		h, err1 := parseHue(channels[0])
		s, err2 := parseNumber(channels[1], 1)
		l, err3 := parseNumber(channels[2], 1)
		if err1 != nil || err2 != nil || err3 != nil {
			return RGBA{}, &UnresolvedColorError{Value: value, Reason: "invalid hsl channel"}
		}
		c = colorful.Hsl(h, s, l)
	case "oklch":
		l, err1 := parseNumber(channels[0], 1)
		ch, err2 := parseNumber(channels[1], 0.4)
		h, err3 := parseHue(channels[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return RGBA{}, &UnresolvedColorError{Value: value, Reason: "invalid oklch channel"}
		}
		c = colorful.OkLch(l, ch, h)
	default:
		return RGBA{}, &UnresolvedColorError{Value: value, Reason: "unsupported function " + fn}
	}

	c = c.Clamped()
	return RGBA{R: round4(c.R), G: round4(c.G), B: round4(c.B), A: alpha}, nil
}

func parseHex(v string) (RGBA, error) {
	hex := strings.TrimPrefix(v, "#")
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return RGBA{}, &UnresolvedColorError{Value: v, Reason: "bad hex length"}
	}

	c, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return RGBA{}, &UnresolvedColorError{Value: v, Reason: err.Error()}
	}
	alpha := 1.0
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return RGBA{}, &UnresolvedColorError{Value: v, Reason: "bad alpha"}
		}
		alpha = round4(float64(a) / 255)
	}
	return RGBA{R: round4(c.R), G: round4(c.G), B: round4(c.B), A: alpha}, nil
}

// splitFunction splits "name(args)" into its parts.
func splitFunction(v string) (name, args string, ok bool) {
	open := strings.IndexByte(v, '(')
	if open <= 0 || !strings.HasSuffix(v, ")") {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(v[:open])), v[open+1 : len(v)-1], true
}

// splitChannels accepts both "r, g, b[, a]" and "r g b[ / a]" syntaxes.
func splitChannels(args string) ([]string, float64, error) {
	alpha := 1.0
	var alphaStr string

	if i := strings.IndexByte(args, '/'); i >= 0 {
		alphaStr = strings.TrimSpace(args[i+1:])
		args = args[:i]
	}

	var channels []string
	if strings.Contains(args, ",") {
		for _, p := range strings.Split(args, ",") {
			channels = append(channels, strings.TrimSpace(p))
		}
		if len(channels) == 4 {
			alphaStr = channels[3]
			channels = channels[:3]
		}
	} else {
		channels = strings.Fields(args)
	}

	if alphaStr != "" {
		a, err := parseNumber(alphaStr, 1)
		if err != nil {
			return nil, 0, err
		}
		alpha = round4(clamp01(a))
	}
	return channels, alpha, nil
}

// parseNumber parses a number or percentage; 100% maps to percentScale.
func parseNumber(s string, percentScale float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return 0, nil
	}
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = percentScale / 100
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return n * scale, nil
}

func parseHue(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "deg")
	return parseNumber(s, 360)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
