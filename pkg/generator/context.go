// Package generator turns registry entries into design-tool component data.
// Each generator is a pure function of a Context and options: it reads
// registry class strings through the class parser, combines them with fixed
// layout constants, and returns a JSON-serialisable ComponentSet.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gnana997/figmagen/catalogs"
	"github.com/gnana997/figmagen/pkg/figma"
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// Context carries everything a generator reads. It is safe to share between
// goroutines once built.
type Context struct {
	Registry *registry.Registry
	Tokens   *tokens.Table
	Parser   *tailwind.Parser
	Logger   *slog.Logger

	// Strict turns unknown options and missing registry entries into errors.
	Strict bool
}

// ContextOptions configure NewContext.
type ContextOptions struct {
	Strict    bool
	CacheSize int
	Logger    *slog.Logger
}

// NewContext wires a class parser over the token table.
func NewContext(reg *registry.Registry, table *tokens.Table, opts ContextOptions) (*Context, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if table == nil {
		return nil, fmt.Errorf("token table is required")
	}
	logger := util.OrDefault(opts.Logger)
	return &Context{
		Registry: reg,
		Tokens:   table,
		Parser:   tailwind.NewParser(table, tailwind.ParserConfig{CacheSize: opts.CacheSize}, logger),
		Logger:   logger,
		Strict:   opts.Strict,
	}, nil
}

var (
	builtinOnce sync.Once
	builtinReg  *registry.Registry
	builtinErr  error
)

// BuiltinRegistry returns the embedded kumo registry, parsed once. It is
// the layout fallback for missing entries and the default project registry.
func BuiltinRegistry() (*registry.Registry, error) {
	builtinOnce.Do(func() {
		builtinReg, builtinErr = registry.LoadFromBytes(catalogs.KumoRegistryJSON)
	})
	return builtinReg, builtinErr
}

// component returns the registry entry, falling back to the built-in entry
// in lenient mode.
func (c *Context) component(name registry.ComponentName) (*registry.Component, error) {
	comp, err := c.Registry.Lookup(name)
	if err == nil {
		return comp, nil
	}
	if c.Strict {
		return nil, err
	}

	reg, berr := BuiltinRegistry()
	if berr != nil {
		return nil, errors.Join(err, berr)
	}
	comp, berr = reg.Lookup(name)
	if berr != nil {
		return nil, err
	}
	c.Logger.Warn("component missing from registry, using built-in layout", "component", name)
	return comp, nil
}

// resolveOption picks the value for one prop: the requested value when it is
// declared, otherwise the default (strict mode returns *UnknownOptionError).
func (c *Context) resolveOption(comp *registry.Component, prop, requested string) (string, error) {
	p, ok := comp.Props[prop]
	if !ok {
		return requested, nil
	}
	if requested == "" {
		return defaultValue(p), nil
	}
	valid := p.Values
	if p.Type == "boolean" {
		valid = []string{"false", "true"}
	}
	if len(valid) == 0 || slices.Contains(valid, requested) {
		return requested, nil
	}
	if c.Strict {
		return "", &UnknownOptionError{Component: comp.Name, Option: prop, Value: requested, Valid: valid}
	}
	fallback := defaultValue(p)
	c.Logger.Warn("unknown option, using default",
		"component", comp.Name,
		"option", prop,
		"value", requested,
		"default", fallback)
	return fallback, nil
}

func defaultValue(p registry.Prop) string {
	switch {
	case p.Default != "":
		return p.Default
	case p.Type == "boolean":
		return "false"
	case p.HasValue("base"):
		return "base"
	case len(p.Values) > 0:
		return p.Values[0]
	}
	return ""
}

// axis is one prop the generator enumerates variants over.
type axis struct {
	prop   string
	values []string
}

// combinations enumerates variant property maps over the given props in
// order. A prop fixed in opts contributes a single value.
func (c *Context) combinations(comp *registry.Component, opts Options, axes ...axis) ([]map[string]string, error) {
	if err := c.checkOptionKeys(comp, opts, axes); err != nil {
		return nil, err
	}

	combos := []map[string]string{{}}
	for _, ax := range axes {
		values := ax.values
		if requested, ok := opts[ax.prop]; ok {
			v, err := c.resolveOption(comp, ax.prop, requested)
			if err != nil {
				return nil, err
			}
			values = []string{v}
		}

		next := make([]map[string]string, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				m := make(map[string]string, len(combo)+1)
				for k, cv := range combo {
					m[k] = cv
				}
				m[ax.prop] = v
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos, nil
}

func (c *Context) checkOptionKeys(comp *registry.Component, opts Options, axes []axis) error {
	for _, key := range sortedOptionKeys(opts) {
		known := false
		for _, ax := range axes {
			if ax.prop == key {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if c.Strict {
			return &UnknownOptionError{Component: comp.Name, Option: key, Value: opts[key]}
		}
		c.Logger.Warn("ignoring unknown option", "component", comp.Name, "option", key)
	}
	return nil
}

// enumAxis enumerates a registry enum prop; a prop absent from the entry
// yields a single empty value so generators fall back to constants.
func enumAxis(comp *registry.Component, prop string) axis {
	values := comp.EnumValues(prop)
	if len(values) == 0 {
		values = []string{""}
	}
	return axis{prop: prop, values: values}
}

func boolAxis(prop string) axis {
	return axis{prop: prop, values: []string{"false", "true"}}
}

// style parses the classes selected by combo, in axis order.
func (c *Context) style(comp *registry.Component, combo map[string]string, props ...string) tailwind.ParsedStyle {
	var parts []string
	for _, prop := range props {
		classes, _, _ := comp.Classes(prop, combo[prop])
		if classes != "" {
			parts = append(parts, classes)
		}
	}
	return c.Parser.Parse(strings.Join(parts, " "))
}

// colorFill binds a semantic colour token.
func (c *Context) colorFill(token string) *Fill {
	return c.variableFill(tokens.ColorVariableName(token))
}

// textFill binds a text token, preferring --text-color-*.
func (c *Context) textFill(token string) *Fill {
	if c.Tokens.HasTextColor(token) {
		return c.variableFill(tokens.TextColorVariableName(token))
	}
	return c.colorFill(token)
}

func (c *Context) variableFill(variable string) *Fill {
	return &Fill{Variable: variable, Color: c.resolveVariable(variable)}
}

// paint converts a parsed colour (variable or direct value) to a Fill.
// Transparent and unresolvable values produce no fill.
func (c *Context) paint(variable, direct string, opacity *float64) *Fill {
	if variable != "" {
		return c.variableFill(variable)
	}
	if direct == "" || direct == "transparent" {
		return nil
	}
	rgba, err := tokens.ParseColor(direct)
	if err != nil {
		c.Logger.Warn("unresolvable colour", "value", direct, "error", err)
		return nil
	}
	col := figma.FromRGBA(rgba)
	if opacity != nil {
		col = col.WithAlpha(*opacity)
	}
	return &Fill{Color: &col}
}

// resolveVariable returns the light value of a variable as a preview colour.
func (c *Context) resolveVariable(variable string) *figma.Color {
	kind, name := tokens.KindColor, strings.TrimPrefix(variable, "color-")
	if strings.HasPrefix(variable, "text-color-") {
		kind, name = tokens.KindTextColor, strings.TrimPrefix(variable, "text-color-")
	}

	if light, _, err := c.Tokens.ResolveToken(kind, name, ""); err == nil {
		col := figma.FromRGBA(light)
		return &col
	}

	// color-<token>-<pct> opacity variants.
	i := strings.LastIndexByte(name, '-')
	if i < 0 {
		return nil
	}
	pct, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return nil
	}
	base := name[:i]
	for _, k := range []tokens.Kind{tokens.KindColor, tokens.KindTextColor} {
		if light, _, err := c.Tokens.ResolveToken(k, base, ""); err == nil {
			col := figma.FromRGBA(light).WithAlpha(float64(pct) / 100)
			return &col
		}
	}
	return nil
}
