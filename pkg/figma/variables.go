package figma

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// FileVersion is written to figma-variables.json.
const FileVersion = "1"

// DefaultCollectionName is the collection holding semantic tokens.
const DefaultCollectionName = "kumo-colors"

// ErrVariableNotFound is returned by Resolve for names not in the file.
var ErrVariableNotFound = errors.New("variable not found")

// VariablesFile is the content of figma-variables.json.
type VariablesFile struct {
	Version     string       `json:"version"`
	Collections []Collection `json:"collections"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// Collection is a Figma variable collection with light and dark modes.
type Collection struct {
	Name      string     `json:"name"`
	Theme     string     `json:"theme,omitempty"`
	Modes     []string   `json:"modes"`
	Variables []Variable `json:"variables"`
}

// Variable is one colour variable with a value per mode.
type Variable struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"displayName"`
	Group       string           `json:"group"`
	Type        string           `json:"type"`
	Scopes      []string         `json:"scopes"`
	Token       string           `json:"token"`
	Opacity     int              `json:"opacity,omitempty"`
	CSS         string           `json:"css"`
	Values      map[string]Color `json:"values"`
}

// BuildOptions configure BuildVariables.
type BuildOptions struct {
	// CollectionName defaults to DefaultCollectionName.
	CollectionName string

	// SkipThemes omits the per-theme override collections.
	SkipThemes bool

	// Strict turns unresolvable semantic tokens into an error instead of a
	// warning.
	Strict bool

	Logger *slog.Logger
}

// BuildVariables emits one collection with every semantic token and opacity
// variant, plus one collection per override theme.
func BuildVariables(table *tokens.Table, modifiers []tokens.OpacityModifier, opts BuildOptions) (*VariablesFile, error) {
	if table == nil {
		return nil, fmt.Errorf("token table is required")
	}
	logger := util.OrDefault(opts.Logger)
	name := opts.CollectionName
	if name == "" {
		name = DefaultCollectionName
	}

	semantic := table.Semantic()
	if len(semantic) == 0 {
		return nil, fmt.Errorf("no semantic colour tokens found (prefix %q)", table.SemanticPrefix())
	}

	file := &VariablesFile{Version: FileVersion}
	primary := Collection{Name: name, Modes: []string{ModeLight, ModeDark}}
	seen := make(map[string]bool)

	var errs []error
	for _, tok := range semantic {
		v, err := tokenVariable(table, tok, "")
		if err != nil {
			if opts.Strict {
				errs = append(errs, err)
				continue
			}
			file.warn(logger, err.Error())
			continue
		}
		seen[v.Name] = true
		primary.Variables = append(primary.Variables, v)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to resolve semantic tokens: %w", errors.Join(errs...))
	}

	for _, mod := range modifiers {
		if seen[mod.VariableName] {
			continue
		}
		v, err := opacityVariable(table, mod)
		if err != nil {
			file.warn(logger, err.Error())
			continue
		}
		seen[v.Name] = true
		primary.Variables = append(primary.Variables, v)
	}
	file.Collections = append(file.Collections, primary)

	if !opts.SkipThemes {
		for _, theme := range table.Themes() {
			col := Collection{Name: name + "-" + theme, Theme: theme, Modes: []string{ModeLight, ModeDark}}
			for _, tok := range table.Overrides(theme) {
				v, err := tokenVariable(table, tok, theme)
				if err != nil {
					file.warn(logger, fmt.Sprintf("theme %s: %v", theme, err))
					continue
				}
				col.Variables = append(col.Variables, v)
			}
			if len(col.Variables) > 0 {
				file.Collections = append(file.Collections, col)
			}
		}
	}

	logger.Debug("built figma variables",
		"collections", len(file.Collections),
		"variables", len(primary.Variables),
		"warnings", len(file.Warnings))

	return file, nil
}

func (f *VariablesFile) warn(logger *slog.Logger, msg string) {
	logger.Warn("skipping variable", "reason", msg)
	f.Warnings = append(f.Warnings, msg)
}

func tokenVariable(table *tokens.Table, tok tokens.ColorToken, theme string) (Variable, error) {
	light, dark, err := table.ResolveToken(tok.Kind, tok.Name, theme)
	if err != nil {
		return Variable{}, err
	}
	return Variable{
		Name:        tok.VariableName(),
		DisplayName: DisplayName(tok.Name),
		Group:       string(tok.Kind),
		Type:        VariableTypeColor,
		Scopes:      scopesFor(tok.Kind),
		Token:       tok.Name,
		CSS:         tok.Property(),
		Values: map[string]Color{
			ModeLight: FromRGBA(light),
			ModeDark:  FromRGBA(dark),
		},
	}, nil
}

func opacityVariable(table *tokens.Table, mod tokens.OpacityModifier) (Variable, error) {
	kind := tokens.KindColor
	switch {
	case table.HasColor(mod.Token):
	case table.HasTextColor(mod.Token):
		kind = tokens.KindTextColor
	default:
		return Variable{}, fmt.Errorf("%s: base token %q is not a semantic colour", mod.VariableName, mod.Token)
	}

	light, dark, err := table.ResolveToken(kind, mod.Token, "")
	if err != nil {
		return Variable{}, fmt.Errorf("%s: %w", mod.VariableName, err)
	}
	factor := float64(mod.Opacity) / 100
	return Variable{
		Name:        mod.VariableName,
		DisplayName: fmt.Sprintf("%s %d", DisplayName(mod.Token), mod.Opacity),
		Group:       "opacity",
		Type:        VariableTypeColor,
		Scopes:      scopesFor(kind),
		Token:       mod.Token,
		Opacity:     mod.Opacity,
		CSS:         "--" + kind.Prefix() + mod.Token,
		Values: map[string]Color{
			ModeLight: FromRGBA(light).WithAlpha(factor),
			ModeDark:  FromRGBA(dark).WithAlpha(factor),
		},
	}, nil
}

func scopesFor(kind tokens.Kind) []string {
	if kind == tokens.KindTextColor {
		return []string{ScopeTextFill}
	}
	return []string{ScopeFrameFill, ScopeShapeFill, ScopeStrokeColor}
}

// DisplayName turns "kumo-brand-hover" into "Kumo Brand Hover".
func DisplayName(token string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(token, "-", " "))
}

// Variable looks up a variable by name in the named collection.
func (f *VariablesFile) Variable(collection, name string) (Variable, bool) {
	for _, col := range f.Collections {
		if col.Name != collection {
			continue
		}
		for _, v := range col.Variables {
			if v.Name == name {
				return v, true
			}
		}
	}
	return Variable{}, false
}

// Resolve returns the light and dark values of a variable in the first
// collection that defines it.
func (f *VariablesFile) Resolve(name string) (light, dark Color, err error) {
	for _, col := range f.Collections {
		for _, v := range col.Variables {
			if v.Name == name {
				return v.Values[ModeLight], v.Values[ModeDark], nil
			}
		}
	}
	return Color{}, Color{}, fmt.Errorf("%w: %s", ErrVariableNotFound, name)
}

// Names returns every variable name of the first collection in order.
func (f *VariablesFile) Names() []string {
	if len(f.Collections) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Collections[0].Variables))
	for _, v := range f.Collections[0].Variables {
		names = append(names, v.Name)
	}
	return names
}

// WriteFile writes the file as indented JSON, creating parent directories.
func (f *VariablesFile) WriteFile(path string) (int, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal variables: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(data), nil
}

// ReadVariablesFile loads a previously written file.
func ReadVariablesFile(path string) (*VariablesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file: %w", err)
	}
	var f VariablesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse variables file: %w", err)
	}
	return &f, nil
}
