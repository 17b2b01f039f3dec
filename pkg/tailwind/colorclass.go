package tailwind

import (
	"strconv"
	"strings"

	"github.com/gnana997/figmagen/pkg/tokens"
)

// ColorClass is the colour part of a utility class such as
// "hover:bg-kumo-brand/70".
type ColorClass struct {
	Utility string // bg, text, border, ring, ...
	Token   string // kumo-brand, red-500, #fff
	Opacity int    // -1 when absent

	// Arbitrary is set for bracketed literals like bg-[#fff].
	Arbitrary bool
}

// IsText reports whether the token is looked up as a text colour first.
func (c ColorClass) IsText() bool {
	return c.Utility == "text" || c.Utility == "placeholder" || c.Utility == "caret" || c.Utility == "decoration"
}

var colorUtilities = []string{
	"bg", "text", "border", "ring", "outline", "fill", "stroke", "divide",
	"placeholder", "accent", "caret", "decoration", "from", "via", "to",
}

// Suffixes that share a colour utility's prefix without being colours.
var nonColorSuffixes = map[string]map[string]bool{
	"text": set("left", "center", "right", "justify", "start", "end", "wrap", "nowrap",
		"balance", "pretty", "ellipsis", "clip", "shadow"),
	"bg": set("none", "cover", "contain", "center", "fixed", "local", "scroll", "repeat",
		"no", "clip", "origin", "gradient", "linear", "radial", "conic", "bottom", "top",
		"left", "right", "auto", "blend"),
	"outline": set("none", "solid", "dashed", "dotted", "double", "hidden", "offset"),
	"fill":    set("none"),
	"stroke":  set("none"),
	"divide":  set("x", "y", "solid", "dashed", "dotted", "double", "none"),
	"decoration": set("solid", "double", "dotted", "dashed", "wavy", "auto", "from",
		"clone", "slice"),
	"accent": set("auto"),
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// SplitColorClass extracts the colour token from a utility class. Variant
// prefixes and "!" are ignored. ok is false for non-colour utilities such as
// text-sm, border-2, ring-offset-2 or bg-[12px].
func SplitColorClass(class string) (ColorClass, bool) {
	base := tokens.BaseClass(class)

	for _, utility := range colorUtilities {
		rest, found := strings.CutPrefix(base, utility+"-")
		if !found || rest == "" {
			continue
		}
		return splitColor(utility, rest)
	}
	return ColorClass{}, false
}

func splitColor(utility, rest string) (ColorClass, bool) {
	// Border sides: border-t-kumo-line, border-x-red-500.
	if utility == "border" {
		if side, tail, ok := strings.Cut(rest, "-"); ok && len(side) <= 2 && notColors[side] {
			rest = tail
		}
	}

	name, pctStr, hasPct := strings.Cut(rest, "/")
	c := ColorClass{Utility: utility, Token: name, Opacity: -1}

	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		inner := name[1 : len(name)-1]
		if !isColorLiteral(inner) {
			return ColorClass{}, false
		}
		c.Token, c.Arbitrary = inner, true
	} else if !colorShaped(utility, name) {
		return ColorClass{}, false
	}

	if hasPct {
		n, err := strconv.Atoi(pctStr)
		if err != nil {
			// text-sm/6 and friends: a line height, not an opacity.
			return ColorClass{}, false
		}
		c.Opacity = n
	}
	return c, true
}

func colorShaped(utility, name string) bool {
	if _, err := strconv.ParseFloat(strings.TrimSuffix(name, "%"), 64); err == nil {
		return false
	}
	first, _, _ := strings.Cut(name, "-")
	if nonColorSuffixes[utility][first] {
		return false
	}
	switch utility {
	case "text":
		_, isSize := fontSizeScale[name]
		return !isSize
	case "border":
		_, isWidth := borderWidthScale[name]
		return !isWidth && !notColors[first]
	case "ring":
		_, isWidth := ringWidthScale[name]
		return !isWidth && !notColors[first] && first != "offset"
	}
	return true
}

func isColorLiteral(v string) bool {
	v = strings.ToLower(v)
	if strings.HasPrefix(v, "color:") {
		return true
	}
	for _, prefix := range []string{"#", "rgb", "hsl", "oklch", "oklab", "lab(", "lch(", "color("} {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

// paletteHues are Tailwind's default palette names; with a shade they form
// primitive colours such as red-500.
var paletteHues = set("slate", "gray", "zinc", "neutral", "stone", "red", "orange", "amber",
	"yellow", "lime", "green", "emerald", "teal", "cyan", "sky", "blue", "indigo", "violet",
	"purple", "fuchsia", "pink", "rose")

// IsPaletteColor reports whether token is a default-palette colour like
// "blue-600".
func IsPaletteColor(token string) bool {
	hue, shade, ok := strings.Cut(token, "-")
	if !ok || !paletteHues[hue] {
		return false
	}
	n, err := strconv.Atoi(shade)
	return err == nil && (n == 50 || n == 950 || (n >= 100 && n <= 900 && n%100 == 0))
}

// IsBuiltinColor reports keywords that need no token: white, black,
// transparent, current and inherit.
func IsBuiltinColor(token string) bool {
	return builtinColors[token] || token == "current" || token == "inherit"
}
