package registry

// Component describes one component of the design system.
type Component struct {
	Name          string                  `json:"name"`
	Category      string                  `json:"category"`
	Description   string                  `json:"description,omitempty"`
	ImportPath    string                  `json:"importPath,omitempty"`
	Props         map[string]Prop         `json:"props,omitempty"`
	SubComponents map[string]SubComponent `json:"subComponents,omitempty"`
	Colors        []string                `json:"colors,omitempty"`
}

// Prop is a component property. Enum props carry one class string and one
// description per allowed value.
type Prop struct {
	Type         string            `json:"type"`
	Description  string            `json:"description,omitempty"`
	Values       []string          `json:"values,omitempty"`
	Classes      map[string]string `json:"classes,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	Default      string            `json:"default,omitempty"`
	Optional     bool              `json:"optional,omitempty"`
}

// SubComponent is a named part of a compound component (e.g. Dialog.Title).
type SubComponent struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Props       map[string]Prop `json:"props,omitempty"`
}

// PropTypeEnum is the prop type whose values map to class strings.
const PropTypeEnum = "enum"

// IsEnum reports whether the prop enumerates its allowed values.
func (p Prop) IsEnum() bool {
	return p.Type == PropTypeEnum
}

// HasValue reports whether value is one of the declared values.
func (p Prop) HasValue(value string) bool {
	for _, v := range p.Values {
		if v == value {
			return true
		}
	}
	return false
}
