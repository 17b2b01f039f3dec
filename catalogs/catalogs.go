// Package catalogs provides the embedded kumo registry and theme used when no
// project files are configured.
package catalogs

import _ "embed"

// KumoRegistryJSON is the bundled kumo component registry, embedded at build time.
//
//go:embed kumo/component-registry.json
var KumoRegistryJSON []byte

// KumoThemeCSS is the bundled kumo theme stylesheet.
//
//go:embed kumo/theme-kumo.css
var KumoThemeCSS []byte

// KumoThemeName is the file name reported for the embedded theme.
const KumoThemeName = "theme-kumo.css"
