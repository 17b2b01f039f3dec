package generator

import (
	"strings"

	"github.com/gnana997/figmagen/pkg/registry"
)

// newComponentSet fills the set header and property declarations from the
// registry entry.
func newComponentSet(comp *registry.Component) *ComponentSet {
	set := &ComponentSet{
		Component:   comp.Name,
		Category:    comp.Category,
		Description: comp.Description,
	}
	for _, name := range comp.PropNames() {
		p := comp.Props[name]
		switch {
		case p.IsEnum():
			set.Properties = append(set.Properties, enumProperty(name, p.Values, defaultValue(p)))
		case p.Type == "boolean":
			set.Properties = append(set.Properties, Property{Name: name, Type: PropertyBoolean, Default: "false"})
		case p.Type == "string":
			set.Properties = append(set.Properties, Property{Name: name, Type: PropertyText, Default: p.Default})
		}
	}
	return set
}

// addVariant appends a variant named from combo in axis order.
func (s *ComponentSet) addVariant(combo map[string]string, axes []axis, root Node) {
	s.Variants = append(s.Variants, Variant{
		Name:       variantName(combo, axisNames(axes)),
		Properties: combo,
		Root:       root,
	})
}

// hasClass reports whether classes contains class as a whole word.
func hasClass(classes, class string) bool {
	for _, f := range strings.Fields(classes) {
		if f == class {
			return true
		}
	}
	return false
}
