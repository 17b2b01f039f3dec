package tokens

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var opacityClassRe = regexp.MustCompile(`^(bg|text|border|ring)-([a-z][a-z0-9-]*)/(\d{1,3})$`)

// fontSizeNames are the text-* sizes whose "/N" suffix is a line height.
var fontSizeNames = map[string]bool{
	"xs": true, "sm": true, "base": true, "lg": true, "xl": true,
	"2xl": true, "3xl": true, "4xl": true, "5xl": true, "6xl": true,
	"7xl": true, "8xl": true, "9xl": true,
}

// OpacityModifier is a colour utility with an opacity suffix, e.g. bg-kumo-brand/70.
type OpacityModifier struct {
	Token        string `json:"token"`
	Opacity      int    `json:"opacity"`
	VariableName string `json:"variableName"`
}

// ExtractOpacityModifiers scans source strings for (bg|text|border|ring)-<token>/<percent>
// classes. Results are de-duplicated by variable name and keep first-seen
// order, so repeated calls over the same input return the same slice.
func ExtractOpacityModifiers(sources ...string) []OpacityModifier {
	var (
		out  []OpacityModifier
		seen = make(map[string]bool)
	)

	for _, src := range sources {
		for _, field := range strings.FieldsFunc(src, isClassSeparator) {
			m := opacityClassRe.FindStringSubmatch(BaseClass(field))
			if m == nil {
				continue
			}
			utility, token := m[1], m[2]
			if utility == "text" && fontSizeNames[token] {
				continue
			}
			pct, err := strconv.Atoi(m[3])
			if err != nil || pct > 100 {
				continue
			}
			name := OpacityVariableName(token, pct)
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, OpacityModifier{Token: token, Opacity: pct, VariableName: name})
		}
	}

	return out
}

func isClassSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '"', '\'', '`', ',', '(', ')', '{', '}', ';', '+', '=', '<', '>':
		return true
	}
	return false
}

// BaseClass strips variant prefixes (hover:, dark:, data-[x]:) and the
// important marker from a class.
func BaseClass(class string) string {
	depth := 0
	cut := 0
	for i, r := range class {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ':':
			if depth == 0 {
				cut = i + 1
			}
		}
	}
	return strings.TrimSuffix(strings.TrimPrefix(class[cut:], "!"), "!")
}

// HasVariant reports whether class carries a state or responsive prefix.
func HasVariant(class string) bool {
	return BaseClass(class) != strings.TrimSuffix(strings.TrimPrefix(class, "!"), "!")
}
