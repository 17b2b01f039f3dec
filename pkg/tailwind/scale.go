package tailwind

import (
	"math"
	"strconv"
	"strings"
)

// spacingUnit is the px size of one spacing step (h-1 = 4px).
const spacingUnit = 4.0

// remPx converts rem arbitrary values.
const remPx = 16.0

var radiusScale = map[string]float64{
	"none": 0,
	"xs":   2,
	"sm":   4,
	"md":   6,
	"lg":   8,
	"xl":   12,
	"2xl":  16,
	"3xl":  24,
	"4xl":  32,
	"full": 9999,
}

// defaultRadius is bare "rounded".
const defaultRadius = 4

var fontSizeScale = map[string]float64{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
	"4xl":  36,
	"5xl":  48,
	"6xl":  60,
	"7xl":  72,
	"8xl":  96,
	"9xl":  128,
}

var fontWeightScale = map[string]float64{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"normal":     400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

var borderWidthScale = map[string]float64{
	"0": 0,
	"2": 2,
	"4": 4,
	"8": 8,
}

// bareBorderWidth and bareRingWidth are "border" and "ring" without a suffix.
const (
	bareBorderWidth = 1
	bareRingWidth   = 1
)

var ringWidthScale = map[string]float64{
	"0": 0,
	"1": 1,
	"2": 2,
	"4": 4,
	"8": 8,
}

// builtinColors are resolved to direct values rather than variables.
var builtinColors = map[string]bool{
	"white":       true,
	"black":       true,
	"transparent": true,
}

// notColors are border-*/ring-* suffixes that are not colour tokens.
var notColors = map[string]bool{
	"solid": true, "dashed": true, "dotted": true, "double": true, "hidden": true, "none": true,
	"x": true, "y": true, "t": true, "b": true, "l": true, "r": true, "s": true, "e": true,
	"collapse": true, "separate": true, "spacing": true, "inset": true, "current": true, "inherit": true,
}

// spacing resolves a spacing suffix: "px", numeric steps including halves,
// and arbitrary [Npx]/[Nrem] values.
func spacing(v string) (float64, bool) {
	if v == "px" {
		return 1, true
	}
	if px, ok := arbitrary(v); ok {
		return px, true
	}
	n, ok := finite(v)
	if !ok || n < 0 {
		return 0, false
	}
	// Steps are whole or half units.
	if n*2 != float64(int(n*2)) {
		return 0, false
	}
	return n * spacingUnit, true
}

// arbitrary parses "[12px]", "[1.5rem]" and "[12]".
func arbitrary(v string) (float64, bool) {
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return 0, false
	}
	inner := v[1 : len(v)-1]
	scale := 1.0
	switch {
	case strings.HasSuffix(inner, "px"):
		inner = strings.TrimSuffix(inner, "px")
	case strings.HasSuffix(inner, "rem"):
		inner = strings.TrimSuffix(inner, "rem")
		scale = remPx
	}
	n, ok := finite(inner)
	if !ok {
		return 0, false
	}
	return n * scale, true
}

// finite parses a decimal number, rejecting Inf and NaN.
func finite(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func lookupScale(scale map[string]float64, v string) (float64, bool) {
	if px, ok := arbitrary(v); ok {
		return px, true
	}
	n, ok := scale[v]
	return n, ok
}
