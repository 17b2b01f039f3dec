package registry

import "strings"

// ComponentName is the closed set of components the generators understand.
type ComponentName string

const (
	Badge       ComponentName = "Badge"
	Breadcrumbs ComponentName = "Breadcrumbs"
	Button      ComponentName = "Button"
	Dialog      ComponentName = "Dialog"
	Input       ComponentName = "Input"
	InputArea   ComponentName = "InputArea"
	LayerCard   ComponentName = "LayerCard"
	Loader      ComponentName = "Loader"
	Meter       ComponentName = "Meter"
	Select      ComponentName = "Select"
	Switch      ComponentName = "Switch"
	Table       ComponentName = "Table"
	Tabs        ComponentName = "Tabs"
)

var componentNames = []ComponentName{
	Badge, Breadcrumbs, Button, Dialog, Input, InputArea, LayerCard,
	Loader, Meter, Select, Switch, Table, Tabs,
}

// ComponentNames returns every known component name in a stable order.
func ComponentNames() []ComponentName {
	out := make([]ComponentName, len(componentNames))
	copy(out, componentNames)
	return out
}

// ParseComponentName matches s against the known names, ignoring case.
func ParseComponentName(s string) (ComponentName, bool) {
	for _, n := range componentNames {
		if strings.EqualFold(string(n), s) {
			return n, true
		}
	}
	return "", false
}

func (n ComponentName) String() string {
	return string(n)
}
