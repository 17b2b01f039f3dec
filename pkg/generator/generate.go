package generator

import (
	"errors"
	"fmt"

	"github.com/gnana997/figmagen/pkg/registry"
)

// GeneratorFunc builds the component set for one component.
type GeneratorFunc func(c *Context, opts Options) (*ComponentSet, error)

var generators = map[registry.ComponentName]GeneratorFunc{
	registry.Badge:       generateBadge,
	registry.Breadcrumbs: generateBreadcrumbs,
	registry.Button:      generateButton,
	registry.Dialog:      generateDialog,
	registry.Input:       generateInput,
	registry.InputArea:   generateInputArea,
	registry.LayerCard:   generateLayerCard,
	registry.Loader:      generateLoader,
	registry.Meter:       generateMeter,
	registry.Select:      generateSelect,
	registry.Switch:      generateSwitch,
	registry.Table:       generateTable,
	registry.Tabs:        generateTabs,
}

// Generate runs the generator for name. A nil opts enumerates every variant.
func Generate(c *Context, name registry.ComponentName, opts Options) (*ComponentSet, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, &registry.NotFoundError{Name: string(name)}
	}
	set, err := gen(c, opts)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	c.Logger.Debug("generated component", "component", name, "variants", len(set.Variants))
	return set, nil
}

// GenerateAll runs every generator in ComponentNames order. Failed components
// are skipped and their errors joined; the sets that succeeded are still
// returned.
func GenerateAll(c *Context) ([]*ComponentSet, error) {
	var (
		sets []*ComponentSet
		errs []error
	)
	for _, name := range registry.ComponentNames() {
		set, err := Generate(c, name, nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, errors.Join(errs...)
}
