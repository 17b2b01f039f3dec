package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Registry is the generated component manifest.
type Registry struct {
	Version    string               `json:"version"`
	Components map[string]Component `json:"components"`

	index *Index
}

// Index provides O(1) lookups into the registry.
// Built during LoadFromBytes after validation passes.
type Index struct {
	// ComponentByName maps a known component name -> *Component.
	ComponentByName map[ComponentName]*Component

	// ComponentByKey maps any registry key (known or not) -> *Component.
	ComponentByKey map[string]*Component

	// SubComponentParent maps sub-component name -> parent *Component.
	SubComponentParent map[string]*Component

	// ComponentsByCategory maps category -> components sorted by name.
	ComponentsByCategory map[string][]*Component
}

// ErrComponentNotFound is returned when a component is absent from the registry.
var ErrComponentNotFound = errors.New("component not found")

// NotFoundError reports a missing registry entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("component %q not found in registry", e.Name)
}

// Is makes errors.Is(err, ErrComponentNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrComponentNotFound
}

// Validate checks the registry for internal consistency, including the
// completeness invariant: every declared enum value has a class string and a
// description. Returns a slice of validation errors (empty if valid).
func (r *Registry) Validate() []error {
	var errs []error

	if r.Version == "" {
		errs = append(errs, fmt.Errorf("registry version is required"))
	}
	if len(r.Components) == 0 {
		errs = append(errs, fmt.Errorf("registry has no components"))
	}

	subNames := make(map[string]string)

	for _, key := range r.SortedKeys() {
		comp := r.Components[key]
		if comp.Name == "" {
			errs = append(errs, fmt.Errorf("components[%q]: name is required", key))
			continue
		}
		if comp.Name != key {
			errs = append(errs, fmt.Errorf("components[%q]: name %q does not match its key", key, comp.Name))
		}
		if comp.Category == "" {
			errs = append(errs, fmt.Errorf("component %q: category is required", comp.Name))
		}

		for _, propName := range sortedPropNames(comp.Props) {
			errs = append(errs, validateProp(comp.Name, propName, comp.Props[propName])...)
		}

		for _, subKey := range sortedKeys(comp.SubComponents) {
			sub := comp.SubComponents[subKey]
			if sub.Name == "" {
				errs = append(errs, fmt.Errorf("component %q sub-component %q: name is required", comp.Name, subKey))
				continue
			}
			if owner, dup := subNames[sub.Name]; dup {
				errs = append(errs, fmt.Errorf("component %q: duplicate sub-component name %q (also in %q)", comp.Name, sub.Name, owner))
				continue
			}
			if _, collides := r.Components[sub.Name]; collides {
				errs = append(errs, fmt.Errorf("component %q: sub-component name %q collides with a top-level component", comp.Name, sub.Name))
				continue
			}
			subNames[sub.Name] = comp.Name

			owner := subOwner(comp.Name, sub.Name)
			for _, propName := range sortedPropNames(sub.Props) {
				errs = append(errs, validateProp(owner, propName, sub.Props[propName])...)
			}
		}
	}

	return errs
}

func validateProp(component, name string, p Prop) []error {
	var errs []error
	if p.Type == "" {
		errs = append(errs, fmt.Errorf("component %q prop %q: type is required", component, name))
	}
	if !p.IsEnum() {
		return errs
	}
	if len(p.Values) == 0 {
		errs = append(errs, fmt.Errorf("component %q prop %q: enum has no values", component, name))
	}
	for _, v := range p.Values {
		if p.Classes[v] == "" {
			errs = append(errs, fmt.Errorf("component %q prop %q: value %q has no class string", component, name, v))
		}
		if p.Descriptions[v] == "" {
			errs = append(errs, fmt.Errorf("component %q prop %q: value %q has no description", component, name, v))
		}
	}
	for _, v := range sortedKeys(p.Classes) {
		if !p.HasValue(v) {
			errs = append(errs, fmt.Errorf("component %q prop %q: classes declare undeclared value %q", component, name, v))
		}
	}
	for _, v := range sortedKeys(p.Descriptions) {
		if !p.HasValue(v) {
			errs = append(errs, fmt.Errorf("component %q prop %q: descriptions declare undeclared value %q", component, name, v))
		}
	}
	if p.Default != "" && !p.HasValue(p.Default) {
		errs = append(errs, fmt.Errorf("component %q prop %q: default %q is not a declared value", component, name, p.Default))
	}
	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (r *Registry) BuildIndex() *Index {
	idx := &Index{
		ComponentByName:      make(map[ComponentName]*Component, len(componentNames)),
		ComponentByKey:       make(map[string]*Component, len(r.Components)),
		SubComponentParent:   make(map[string]*Component),
		ComponentsByCategory: make(map[string][]*Component),
	}

	for _, key := range r.SortedKeys() {
		comp := r.Components[key]
		c := &comp
		idx.ComponentByKey[key] = c
		if name, ok := ParseComponentName(key); ok && string(name) == key {
			idx.ComponentByName[name] = c
		}
		idx.ComponentsByCategory[c.Category] = append(idx.ComponentsByCategory[c.Category], c)
		for _, sub := range c.SubComponents {
			idx.SubComponentParent[sub.Name] = c
		}
	}

	r.index = idx
	return idx
}

// Index returns the lookup index, building it on first use.
func (r *Registry) Index() *Index {
	if r.index == nil {
		r.BuildIndex()
	}
	return r.index
}

// Lookup returns the entry for a known component.
// A missing entry yields a *NotFoundError, never a nil component without error.
func (r *Registry) Lookup(name ComponentName) (*Component, error) {
	if comp, ok := r.Index().ComponentByName[name]; ok {
		return comp, nil
	}
	return nil, &NotFoundError{Name: string(name)}
}

// SortedKeys returns the registry keys in lexical order.
func (r *Registry) SortedKeys() []string {
	return sortedKeys(r.Components)
}

// LoadFromFile loads a registry from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a registry from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}

	if errs := reg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}

	reg.BuildIndex()
	return &reg, nil
}

// Classes returns the class string for value of the named prop. When value is
// not declared, the prop default is used instead and ok is false.
func (c *Component) Classes(prop, value string) (classes, resolved string, ok bool) {
	p, exists := c.Props[prop]
	if !exists {
		return "", "", false
	}
	if p.HasValue(value) {
		return p.Classes[value], value, true
	}
	return p.Classes[p.Default], p.Default, false
}

// EnumValues returns the declared values of an enum prop, or nil.
func (c *Component) EnumValues(prop string) []string {
	p, ok := c.Props[prop]
	if !ok || !p.IsEnum() {
		return nil
	}
	return p.Values
}

// PropNames returns the component's prop names in lexical order.
func (c *Component) PropNames() []string {
	return sortedPropNames(c.Props)
}

func sortedPropNames(props map[string]Prop) []string {
	return sortedKeys(props)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnumClass is one declared enum value of a component or sub-component
// prop. Owner is "Comp" or "Comp.Sub".
type EnumClass struct {
	Owner   string
	Prop    string
	Value   string
	Classes string
}

// EnumClasses returns every declared enum value in component, prop and
// declared value order; a component's sub-components follow its own props
// in name order.
func (r *Registry) EnumClasses() []EnumClass {
	var out []EnumClass
	add := func(owner string, props map[string]Prop) {
		for _, propName := range sortedPropNames(props) {
			prop := props[propName]
			if !prop.IsEnum() {
				continue
			}
			for _, v := range prop.Values {
				out = append(out, EnumClass{Owner: owner, Prop: propName, Value: v, Classes: prop.Classes[v]})
			}
		}
	}
	for _, key := range r.SortedKeys() {
		comp := r.Components[key]
		add(comp.Name, comp.Props)
		for _, subKey := range sortedKeys(comp.SubComponents) {
			sub := comp.SubComponents[subKey]
			add(subOwner(comp.Name, sub.Name), sub.Props)
		}
	}
	return out
}

// subOwner qualifies a sub-component name with its parent unless it already
// is ("Dialog.Title").
func subOwner(parent, sub string) string {
	if strings.HasPrefix(sub, parent+".") {
		return sub
	}
	return parent + "." + sub
}

// ClassStrings returns the non-empty class strings of EnumClasses.
func (r *Registry) ClassStrings() []string {
	var out []string
	for _, ec := range r.EnumClasses() {
		if ec.Classes != "" {
			out = append(out, ec.Classes)
		}
	}
	return out
}
