package generator

import (
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tailwind"
)

const (
	dialogTitleSize      = 18
	dialogTitleWeight    = 600
	dialogBodySize       = 14
	dialogBodyWeight     = 400
	dialogActionSpacing  = 8
	dialogTitle          = "Dialog title"
	dialogDescription    = "Describe what happens when the action is confirmed."
	dialogCancelLabel    = "Cancel"
	dialogConfirmLabel   = "Confirm"
	dialogCancelVariant  = "secondary"
	dialogConfirmVariant = "primary"
	dialogActionsSize    = "base"
)

func generateDialog(c *Context, opts Options) (*ComponentSet, error) {
	comp, err := c.component(registry.Dialog)
	if err != nil {
		return nil, err
	}
	button, err := c.component(registry.Button)
	if err != nil {
		return nil, err
	}

	axes := []axis{enumAxis(comp, "size")}
	combos, err := c.combinations(comp, opts, axes...)
	if err != nil {
		return nil, err
	}

	set := newComponentSet(comp)
	for _, combo := range combos {
		s := c.style(comp, combo, "size")

		root := c.frame("Dialog", LayoutVertical, s)
		root.Children = []Node{
			c.text("Dialog.Title", dialogTitle, tailwind.ParsedStyle{}, dialogTitleSize, dialogTitleWeight, c.textFill("kumo-strong")),
			c.text("Dialog.Description", dialogDescription, tailwind.ParsedStyle{}, dialogBodySize, dialogBodyWeight, c.textFill("kumo-subtle")),
			c.dialogActions(button),
		}
		set.addVariant(combo, axes, root)
	}
	return set, nil
}

func (c *Context) dialogActions(button *registry.Component) Node {
	return Node{
		Name:             "Dialog.Actions",
		Type:             NodeFrame,
		Layout:           LayoutHorizontal,
		HorizontalSizing: SizingFill,
		VerticalSizing:   SizingHug,
		Spacing:          dialogActionSpacing,
		PrimaryAlign:     AlignMax,
		CounterAlign:     AlignCenter,
		Children: []Node{
			c.buttonNode(button, dialogCancelVariant, dialogActionsSize, dialogCancelLabel),
			c.buttonNode(button, dialogConfirmVariant, dialogActionsSize, dialogConfirmLabel),
		},
	}
}
