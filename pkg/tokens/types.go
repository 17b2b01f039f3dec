// Package tokens loads colour custom properties from theme CSS into a
// read-only token table and extracts opacity modifiers from class strings.
package tokens

import (
	"errors"
	"fmt"
)

// TokenType classifies where a token comes from.
type TokenType string

const (
	// TokenSemantic is a design-system token under the semantic prefix.
	TokenSemantic TokenType = "semantic"
	// TokenGlobal is a palette primitive such as blue-600.
	TokenGlobal TokenType = "global"
	// TokenOverride is a semantic token redefined inside a [data-theme] block.
	TokenOverride TokenType = "override"
)

// Kind distinguishes --color-* from --text-color-* properties.
type Kind string

const (
	KindColor     Kind = "color"
	KindTextColor Kind = "text-color"
)

// Prefix returns the custom property prefix for the kind, without dashes.
func (k Kind) Prefix() string {
	return string(k) + "-"
}

// Mode selects the light or dark side of a token.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
)

func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// DefaultSemanticPrefix marks semantic tokens.
const DefaultSemanticPrefix = "kumo-"

// ColorToken is one colour custom property. Light and Dark hold raw CSS
// values; Dark equals Light when the stylesheet declares no dark variant.
type ColorToken struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Light  string    `json:"light"`
	Dark   string    `json:"dark"`
	Theme  string    `json:"theme,omitempty"`
	Type   TokenType `json:"type"`
	Source string    `json:"source,omitempty"`
}

// Property returns the CSS custom property name, e.g. "--color-kumo-brand".
func (t ColorToken) Property() string {
	return "--" + t.Kind.Prefix() + t.Name
}

// VariableName returns the design variable name for the token.
func (t ColorToken) VariableName() string {
	if t.Kind == KindTextColor {
		return TextColorVariableName(t.Name)
	}
	return ColorVariableName(t.Name)
}

// RGBA is an sRGB colour with channels in 0..1.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ErrUnresolvedColor is returned when a CSS value cannot be turned into RGBA.
var ErrUnresolvedColor = errors.New("unresolved color")

// UnresolvedColorError carries the value that failed to resolve.
type UnresolvedColorError struct {
	Value  string
	Reason string
}

func (e *UnresolvedColorError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unresolved color %q", e.Value)
	}
	return fmt.Sprintf("unresolved color %q: %s", e.Value, e.Reason)
}

func (e *UnresolvedColorError) Is(target error) bool {
	return target == ErrUnresolvedColor
}
