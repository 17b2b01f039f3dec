package tokens

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a read-only colour token lookup built once per run.
type Table struct {
	prefix    string
	base      []ColorToken
	baseIndex map[tokenKey]int
	overrides map[string][]ColorToken
	overIndex map[tokenKey]int
}

// NewTable indexes tokens. Override tokens are grouped by theme.
func NewTable(semanticPrefix string, toks ...ColorToken) *Table {
	if semanticPrefix == "" {
		semanticPrefix = DefaultSemanticPrefix
	}
	t := &Table{
		prefix:    semanticPrefix,
		baseIndex: make(map[tokenKey]int),
		overrides: make(map[string][]ColorToken),
		overIndex: make(map[tokenKey]int),
	}
	for _, tok := range toks {
		key := tokenKey{kind: tok.Kind, name: tok.Name, theme: tok.Theme}
		if tok.Theme != "" {
			if i, ok := t.overIndex[key]; ok {
				t.overrides[tok.Theme][i] = tok
				continue
			}
			t.overIndex[key] = len(t.overrides[tok.Theme])
			t.overrides[tok.Theme] = append(t.overrides[tok.Theme], tok)
			continue
		}
		if i, ok := t.baseIndex[key]; ok {
			t.base[i] = tok
			continue
		}
		t.baseIndex[key] = len(t.base)
		t.base = append(t.base, tok)
	}
	return t
}

// SemanticPrefix returns the prefix that marks semantic tokens.
func (t *Table) SemanticPrefix() string {
	return t.prefix
}

// Lookup returns the base token of the given kind.
func (t *Table) Lookup(kind Kind, name string) (ColorToken, bool) {
	i, ok := t.baseIndex[tokenKey{kind: kind, name: name}]
	if !ok {
		return ColorToken{}, false
	}
	return t.base[i], true
}

// LookupTheme returns the theme's override for a token, falling back to the
// base token.
func (t *Table) LookupTheme(kind Kind, name, theme string) (ColorToken, bool) {
	if theme != "" {
		if i, ok := t.overIndex[tokenKey{kind: kind, name: name, theme: theme}]; ok {
			return t.overrides[theme][i], true
		}
	}
	return t.Lookup(kind, name)
}

// HasColor reports whether name is a semantic --color-* token.
func (t *Table) HasColor(name string) bool {
	tok, ok := t.Lookup(KindColor, name)
	return ok && tok.Type == TokenSemantic
}

// HasTextColor reports whether name is a semantic --text-color-* token.
func (t *Table) HasTextColor(name string) bool {
	tok, ok := t.Lookup(KindTextColor, name)
	return ok && tok.Type == TokenSemantic
}

// IsGlobal reports whether name is a palette primitive.
func (t *Table) IsGlobal(name string) bool {
	tok, ok := t.Lookup(KindColor, name)
	return ok && tok.Type == TokenGlobal
}

// Semantic returns the semantic base tokens in declaration order.
func (t *Table) Semantic() []ColorToken {
	return t.filter(TokenSemantic)
}

// Global returns the palette primitives in declaration order.
func (t *Table) Global() []ColorToken {
	return t.filter(TokenGlobal)
}

func (t *Table) filter(typ TokenType) []ColorToken {
	var out []ColorToken
	for _, tok := range t.base {
		if tok.Type == typ {
			out = append(out, tok)
		}
	}
	return out
}

// All returns every base token in declaration order.
func (t *Table) All() []ColorToken {
	return append([]ColorToken(nil), t.base...)
}

// Overrides returns the tokens redefined by a theme.
func (t *Table) Overrides(theme string) []ColorToken {
	return append([]ColorToken(nil), t.overrides[theme]...)
}

// Themes returns the override theme names, sorted.
func (t *Table) Themes() []string {
	themes := make([]string, 0, len(t.overrides))
	for theme := range t.overrides {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	return themes
}

// Len returns the number of base tokens.
func (t *Table) Len() int {
	return len(t.base)
}

// ResolveToken resolves a token to its light and dark colours in the given
// theme ("" for the base theme).
func (t *Table) ResolveToken(kind Kind, name, theme string) (light, dark RGBA, err error) {
	tok, ok := t.LookupTheme(kind, name, theme)
	if !ok {
		return RGBA{}, RGBA{}, &UnresolvedColorError{Value: "--" + kind.Prefix() + name, Reason: "unknown token"}
	}
	light, err = t.Resolve(tok.Light, ModeLight, theme)
	if err != nil {
		return RGBA{}, RGBA{}, fmt.Errorf("%s light: %w", tok.Property(), err)
	}
	dark, err = t.Resolve(tok.Dark, ModeDark, theme)
	if err != nil {
		return RGBA{}, RGBA{}, fmt.Errorf("%s dark: %w", tok.Property(), err)
	}
	return light, dark, nil
}

// lookupProperty resolves a "--color-*" or "--text-color-*" reference.
func (t *Table) lookupProperty(prop, theme string) (ColorToken, bool) {
	name := strings.TrimPrefix(prop, "--")
	switch {
	case strings.HasPrefix(name, KindTextColor.Prefix()):
		return t.LookupTheme(KindTextColor, strings.TrimPrefix(name, KindTextColor.Prefix()), theme)
	case strings.HasPrefix(name, KindColor.Prefix()):
		return t.LookupTheme(KindColor, strings.TrimPrefix(name, KindColor.Prefix()), theme)
	}
	return ColorToken{}, false
}
