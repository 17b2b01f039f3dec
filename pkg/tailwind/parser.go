package tailwind

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// TokenSet is the semantic-token allowlist consulted for colour utilities.
// *tokens.Table satisfies it.
type TokenSet interface {
	HasColor(name string) bool
	HasTextColor(name string) bool
}

// ParserConfig controls the parse cache.
type ParserConfig struct {
	// CacheSize is the number of distinct class strings kept. 0 uses the
	// default; negative disables caching.
	CacheSize int

	// Debug logs cache evictions.
	Debug bool
}

// DefaultParserConfig returns the default cache settings.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{CacheSize: 512}
}

// Parser converts class strings to ParsedStyle. Safe for concurrent use.
type Parser struct {
	tokens TokenSet
	cache  *lru.Cache[string, ParsedStyle]
	logger *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// CacheStats reports parse cache activity.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// NewParser creates a parser over the given allowlist.
func NewParser(set TokenSet, config ParserConfig, logger *slog.Logger) *Parser {
	logger = util.OrDefault(logger)
	if config.CacheSize == 0 {
		config.CacheSize = DefaultParserConfig().CacheSize
	}

	p := &Parser{tokens: set, logger: logger}

	if config.CacheSize > 0 {
		cache, err := lru.NewWithEvict(config.CacheSize, func(key string, _ ParsedStyle) {
			p.evictions.Add(1)
			if config.Debug {
				logger.Debug("LRU evicting class string", "classes", key)
			}
		})
		if err != nil {
			// Only reachable with a non-positive size.
			panic(fmt.Sprintf("failed to create LRU cache: %v", err))
		}
		p.cache = cache
	}

	return p
}

// Stats returns cache counters.
func (p *Parser) Stats() CacheStats {
	stats := CacheStats{
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Evictions: p.evictions.Load(),
	}
	if p.cache != nil {
		stats.Entries = p.cache.Len()
	}
	return stats
}

// Purge empties the cache. Used when the token table is reloaded.
func (p *Parser) Purge() {
	if p.cache != nil {
		p.cache.Purge()
	}
}

// Parse converts a whitespace-separated class string. Unknown utilities and
// unknown tokens are ignored; a miss leaves the field unset.
func (p *Parser) Parse(classes string) ParsedStyle {
	key := strings.Join(strings.Fields(classes), " ")

	if p.cache != nil {
		if s, ok := p.cache.Get(key); ok {
			p.hits.Add(1)
			return s.Clone()
		}
	}
	p.misses.Add(1)

	var s ParsedStyle
	for _, raw := range strings.Fields(key) {
		if tokens.HasVariant(raw) {
			continue
		}
		p.apply(&s, tokens.BaseClass(raw))
	}

	if p.cache != nil {
		p.cache.Add(key, s.Clone())
	}
	return s
}

func (p *Parser) apply(s *ParsedStyle, class string) {
	switch {
	case class == "rounded":
		s.BorderRadius = ptr(defaultRadius)
	case class == "border":
		s.BorderWidth = ptr(bareBorderWidth)
	case class == "ring":
		s.RingWidth = ptr(bareRingWidth)
	case strings.HasPrefix(class, "rounded-"):
		if v, ok := lookupScale(radiusScale, class[len("rounded-"):]); ok {
			s.BorderRadius = ptr(v)
		}
	case strings.HasPrefix(class, "size-"):
		if v, ok := spacing(class[len("size-"):]); ok {
			s.Height, s.Width = ptr(v), ptr(v)
		}
	case strings.HasPrefix(class, "min-h-"):
		setSpacing(&s.MinHeight, class[len("min-h-"):])
	case strings.HasPrefix(class, "h-"):
		setSpacing(&s.Height, class[len("h-"):])
	case strings.HasPrefix(class, "w-"):
		setSpacing(&s.Width, class[len("w-"):])
	case strings.HasPrefix(class, "px-"):
		setSpacing(&s.PaddingX, class[len("px-"):])
	case strings.HasPrefix(class, "py-"):
		setSpacing(&s.PaddingY, class[len("py-"):])
	case strings.HasPrefix(class, "p-"):
		if v, ok := spacing(class[len("p-"):]); ok {
			s.PaddingX, s.PaddingY = ptr(v), ptr(v)
		}
	case strings.HasPrefix(class, "gap-"):
		setSpacing(&s.Gap, class[len("gap-"):])
	case strings.HasPrefix(class, "font-"):
		if v, ok := fontWeightScale[class[len("font-"):]]; ok {
			s.FontWeight = ptr(v)
		}
	case strings.HasPrefix(class, "opacity-"):
		if n, err := strconv.Atoi(class[len("opacity-"):]); err == nil && n >= 0 && n <= 100 {
			s.Opacity = ptr(float64(n) / 100)
		}
	case strings.HasPrefix(class, "text-"):
		p.applyText(s, class[len("text-"):])
	case strings.HasPrefix(class, "bg-"):
		if c, ok := p.color(class[len("bg-"):], false); ok {
			s.FillVariable, s.FillColor, s.FillOpacity = c.variable, c.direct, c.opacity
		}
	case strings.HasPrefix(class, "border-"):
		p.applyBorder(s, class[len("border-"):])
	case strings.HasPrefix(class, "ring-"):
		p.applyRing(s, class[len("ring-"):])
	}
}

func setSpacing(dst **float64, v string) {
	if px, ok := spacing(v); ok {
		*dst = ptr(px)
	}
}

func (p *Parser) applyText(s *ParsedStyle, v string) {
	// text-sm/6 carries a line height, not an opacity.
	size, _, _ := strings.Cut(v, "/")
	if px, ok := lookupScale(fontSizeScale, size); ok {
		s.FontSize = ptr(px)
		return
	}
	c, ok := p.color(v, true)
	if !ok {
		return
	}
	s.TextVariable, s.TextColor, s.TextOpacity = c.variable, c.direct, c.opacity
	s.IsWhiteText = c.direct == "white"
}

func (p *Parser) applyBorder(s *ParsedStyle, v string) {
	if w, ok := lookupScale(borderWidthScale, v); ok {
		s.BorderWidth = ptr(w)
		return
	}
	if first, _, _ := strings.Cut(v, "-"); notColors[first] {
		return
	}
	if c, ok := p.color(v, false); ok {
		s.StrokeVariable, s.StrokeColor, s.StrokeOpacity = c.variable, c.direct, c.opacity
	}
}

func (p *Parser) applyRing(s *ParsedStyle, v string) {
	if w, ok := lookupScale(ringWidthScale, v); ok {
		s.RingWidth = ptr(w)
		return
	}
	if first, _, _ := strings.Cut(v, "-"); notColors[first] || first == "offset" {
		return
	}
	if c, ok := p.color(v, false); ok {
		s.RingVariable, s.RingColor, s.RingOpacity = c.variable, c.direct, c.opacity
	}
}

type colorRef struct {
	variable string
	direct   string
	opacity  *float64
}

// color resolves a colour suffix such as "kumo-brand/70" through the
// allowlist. text selects the --text-color-* namespace first.
func (p *Parser) color(v string, text bool) (colorRef, bool) {
	name, pctStr, hasPct := strings.Cut(v, "/")

	var ref colorRef
	pct := -1
	if hasPct {
		n, err := strconv.Atoi(pctStr)
		if err != nil || n < 0 || n > 100 {
			return colorRef{}, false
		}
		pct = n
		ref.opacity = ptr(float64(n) / 100)
	}

	switch {
	case builtinColors[name]:
		ref.direct = name
		return ref, true
	case strings.HasPrefix(name, "[#") && strings.HasSuffix(name, "]"):
		ref.direct = name[1 : len(name)-1]
		return ref, true
	case p.tokens == nil:
		return colorRef{}, false
	}

	switch {
	case pct >= 0 && (p.tokens.HasColor(name) || (text && p.tokens.HasTextColor(name))):
		ref.variable = tokens.OpacityVariableName(name, pct)
	case text && p.tokens.HasTextColor(name):
		ref.variable = tokens.TextColorVariableName(name)
	case p.tokens.HasColor(name):
		ref.variable = tokens.ColorVariableName(name)
	default:
		return colorRef{}, false
	}
	return ref, true
}
