package tokens

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gnana997/figmagen/catalogs"
	"github.com/gnana997/figmagen/pkg/util"
)

var (
	commentRe     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	declarationRe = regexp.MustCompile(`^--((?:text-)?color)-([a-z0-9][a-z0-9-]*)\s*:\s*(.+)$`)
	themeRe       = regexp.MustCompile(`\[data-theme\s*=\s*["']?([\w-]+)["']?\s*\]`)
	darkSchemeRe  = regexp.MustCompile(`prefers-color-scheme\s*:\s*dark`)
	darkClassRe   = regexp.MustCompile(`\.dark(?:[^\w-]|$)`)
)

// ParseOptions configure CSS parsing.
type ParseOptions struct {
	// SemanticPrefix marks semantic tokens. Defaults to DefaultSemanticPrefix.
	SemanticPrefix string

	// Source is recorded on each token parsed from the input.
	Source string

	// Cache, when set, is used to read files in LoadFiles.
	Cache util.FileCache
}

func (o ParseOptions) prefix() string {
	if o.SemanticPrefix == "" {
		return DefaultSemanticPrefix
	}
	return o.SemanticPrefix
}

// blockContext is what the enclosing selectors say about a declaration.
type blockContext struct {
	dark  bool
	theme string
}

func contextOf(selectors []string) blockContext {
	var ctx blockContext
	for _, sel := range selectors {
		if isDarkSelector(sel) {
			ctx.dark = true
		}
		if m := themeRe.FindStringSubmatch(sel); m != nil {
			ctx.theme = m[1]
		}
	}
	return ctx
}

func isDarkSelector(sel string) bool {
	if darkSchemeRe.MatchString(sel) {
		return true
	}
	if strings.Contains(sel, `data-mode="dark"`) || strings.Contains(sel, `data-mode='dark'`) || strings.Contains(sel, "data-mode=dark") {
		return true
	}
	return darkClassRe.MatchString(sel)
}

// declaration is a raw colour declaration with its block context.
type declaration struct {
	kind  Kind
	name  string
	value string
	ctx   blockContext
}

// scanDeclarations walks the stylesheet block structure and returns colour
// declarations in source order.
func scanDeclarations(src string) []declaration {
	src = commentRe.ReplaceAllString(src, "")

	var (
		decls     []declaration
		selectors []string
		buf       strings.Builder
		depth     int // parenthesis depth inside the current statement
	)

	flush := func() {
		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		if stmt == "" {
			return
		}
		m := declarationRe.FindStringSubmatch(stmt)
		if m == nil {
			return
		}
		decls = append(decls, declaration{
			kind:  Kind(m[1]),
			name:  m[2],
			value: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[3]), "!important")),
			ctx:   contextOf(selectors),
		})
	}

	for _, r := range src {
		switch {
		case r == '(':
			depth++
			buf.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			buf.WriteRune(r)
		case depth > 0:
			buf.WriteRune(r)
		case r == '{':
			selectors = append(selectors, strings.TrimSpace(buf.String()))
			buf.Reset()
		case r == '}':
			flush()
			if len(selectors) > 0 {
				selectors = selectors[:len(selectors)-1]
			}
		case r == ';':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()

	return decls
}

// splitLightDark splits "light-dark(a, b)" at its top-level comma.
func splitLightDark(value string) (light, dark string, ok bool) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(strings.ToLower(v), "light-dark(") || !strings.HasSuffix(v, ")") {
		return "", "", false
	}
	args := splitTopLevel(v[len("light-dark("):len(v)-1], ',')
	if len(args) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(args[0]), strings.TrimSpace(args[1]), true
}

// splitTopLevel splits s on sep occurring outside parentheses.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// ParseCSS extracts colour tokens from a stylesheet. Tokens are returned in
// first-declaration order; a later declaration of the same token in the same
// theme replaces its value, and a declaration inside a dark block sets only
// the dark value.
func ParseCSS(src []byte, opts ParseOptions) []ColorToken {
	b := newBuilder(opts.prefix())
	b.add(scanDeclarations(string(src)), opts.Source)
	return b.tokens()
}

type tokenKey struct {
	kind  Kind
	name  string
	theme string
}

type builder struct {
	prefix string
	order  []tokenKey
	byKey  map[tokenKey]*ColorToken
	// darkSet records tokens whose dark value came from an explicit dark source.
	darkSet map[tokenKey]bool
}

func newBuilder(prefix string) *builder {
	return &builder{
		prefix:  prefix,
		byKey:   make(map[tokenKey]*ColorToken),
		darkSet: make(map[tokenKey]bool),
	}
}

func (b *builder) add(decls []declaration, source string) {
	for _, d := range decls {
		key := tokenKey{kind: d.kind, name: d.name, theme: d.ctx.theme}
		tok, exists := b.byKey[key]
		if !exists {
			tok = &ColorToken{
				Name:   d.name,
				Kind:   d.kind,
				Theme:  d.ctx.theme,
				Type:   b.classify(d.name, d.ctx.theme),
				Source: source,
			}
			b.byKey[key] = tok
			b.order = append(b.order, key)
		}

		if light, dark, ok := splitLightDark(d.value); ok {
			if d.ctx.dark {
				tok.Dark = dark
			} else {
				tok.Light = light
				tok.Dark = dark
			}
			b.darkSet[key] = true
			continue
		}

		if d.ctx.dark {
			tok.Dark = d.value
			b.darkSet[key] = true
			continue
		}
		tok.Light = d.value
		if !b.darkSet[key] {
			tok.Dark = d.value
		}
	}
}

func (b *builder) classify(name, theme string) TokenType {
	switch {
	case theme != "":
		return TokenOverride
	case strings.HasPrefix(name, b.prefix):
		return TokenSemantic
	default:
		return TokenGlobal
	}
}

func (b *builder) tokens() []ColorToken {
	out := make([]ColorToken, 0, len(b.order))
	for _, key := range b.order {
		tok := *b.byKey[key]
		// Dark-only declarations fall back to the dark value for light.
		if tok.Light == "" {
			tok.Light = tok.Dark
		}
		out = append(out, tok)
	}
	return out
}

// LoadFiles parses every stylesheet in order into one table. Declarations in
// later files take precedence for the same token.
func LoadFiles(paths []string, opts ParseOptions) (*Table, error) {
	b := newBuilder(opts.prefix())
	for _, path := range paths {
		data, err := readFile(opts.Cache, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read theme file: %w", err)
		}
		b.add(scanDeclarations(string(data)), path)
	}
	return NewTable(opts.prefix(), b.tokens()...), nil
}

// LoadEmbedded parses the bundled kumo theme.
func LoadEmbedded(opts ParseOptions) *Table {
	opts.Source = catalogs.KumoThemeName
	return NewTable(opts.prefix(), ParseCSS(catalogs.KumoThemeCSS, opts)...)
}

func readFile(cache util.FileCache, path string) ([]byte, error) {
	if cache != nil {
		return cache.ReadAll(path)
	}
	return os.ReadFile(path)
}

// DiscoverCSSFiles finds stylesheets under root. An empty include list
// defaults to every .css file.
func DiscoverCSSFiles(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{"**/*.css"}
	}
	return util.DiscoverFiles(root, include, exclude)
}
