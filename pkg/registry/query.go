package registry

import (
	"sort"
	"strings"
)

// Category groups component names under a category label.
type Category struct {
	Name       string   `json:"name"`
	Components []string `json:"components"`
}

// ComponentSearchResult holds a component match with the reason it matched.
type ComponentSearchResult struct {
	Component   *Component
	MatchReason string
}

// QueryService provides read-only query methods over a loaded registry.
type QueryService struct {
	Registry *Registry
	Index    *Index
}

// NewQueryService creates a QueryService from a validated registry.
func NewQueryService(reg *Registry) *QueryService {
	return &QueryService{Registry: reg, Index: reg.Index()}
}

// LoadAndQuery loads a registry from file and returns a ready-to-use QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	reg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(reg), nil
}

// ListCategories returns all categories sorted by name.
func (q *QueryService) ListCategories() []Category {
	names := make([]string, 0, len(q.Index.ComponentsByCategory))
	for name := range q.Index.ComponentsByCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	cats := make([]Category, 0, len(names))
	for _, name := range names {
		cat := Category{Name: name}
		for _, comp := range q.Index.ComponentsByCategory[name] {
			cat.Components = append(cat.Components, comp.Name)
		}
		cats = append(cats, cat)
	}
	return cats
}

// ListComponents returns components filtered by category and/or keyword.
// Both filters are optional (pass "" to skip). When both are provided, they combine with AND logic.
// The keyword matches case-insensitively against component Name and Description.
func (q *QueryService) ListComponents(category, keyword string) []Component {
	var candidates []*Component

	if category != "" {
		for cat, comps := range q.Index.ComponentsByCategory {
			if strings.EqualFold(cat, category) {
				candidates = comps
				break
			}
		}
	} else {
		for _, key := range q.Registry.SortedKeys() {
			candidates = append(candidates, q.Index.ComponentByKey[key])
		}
	}

	keyword = strings.ToLower(keyword)
	result := make([]Component, 0)

	for _, comp := range candidates {
		if keyword != "" {
			nameLower := strings.ToLower(comp.Name)
			descLower := strings.ToLower(comp.Description)
			if !strings.Contains(nameLower, keyword) && !strings.Contains(descLower, keyword) {
				continue
			}
		}
		result = append(result, *comp)
	}

	return result
}

// GetComponent looks up a component by name. It first checks top-level components,
// then falls back to sub-component names (returning the parent component).
// The bool indicates whether the component was found.
func (q *QueryService) GetComponent(name string) (*Component, bool) {
	if comp, ok := q.Index.ComponentByKey[name]; ok {
		return comp, true
	}
	if parent, ok := q.Index.SubComponentParent[name]; ok {
		return parent, true
	}
	return nil, false
}

// SearchComponents performs a case-insensitive search across component names,
// descriptions, prop names, and sub-component names.
func (q *QueryService) SearchComponents(query string) []ComponentSearchResult {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	var results []ComponentSearchResult

	for _, key := range q.Registry.SortedKeys() {
		comp := q.Index.ComponentByKey[key]

		if strings.Contains(strings.ToLower(comp.Name), query) {
			results = append(results, ComponentSearchResult{Component: comp, MatchReason: "name"})
			continue
		}

		if strings.Contains(strings.ToLower(comp.Description), query) {
			results = append(results, ComponentSearchResult{Component: comp, MatchReason: "description"})
			continue
		}

		if reason := matchProps(comp, query); reason != "" {
			results = append(results, ComponentSearchResult{Component: comp, MatchReason: reason})
			continue
		}

		for _, subKey := range sortedKeys(comp.SubComponents) {
			sub := comp.SubComponents[subKey]
			if strings.Contains(strings.ToLower(sub.Name), query) {
				results = append(results, ComponentSearchResult{Component: comp, MatchReason: "sub-component:" + sub.Name})
				break
			}
		}
	}

	return results
}

func matchProps(comp *Component, query string) string {
	for _, name := range comp.PropNames() {
		if strings.Contains(strings.ToLower(name), query) {
			return "prop:" + name
		}
	}
	return ""
}

// ColorUsage maps each colour token to the components that declare it, in
// component name order.
func (q *QueryService) ColorUsage() map[string][]string {
	usage := make(map[string][]string)
	for _, key := range q.Registry.SortedKeys() {
		comp := q.Index.ComponentByKey[key]
		for _, token := range comp.Colors {
			usage[token] = append(usage[token], comp.Name)
		}
	}
	return usage
}
