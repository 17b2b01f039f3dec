// Package scanner finds utility-class strings in TypeScript and JavaScript
// sources: className/class JSX attributes and the arguments of class helpers
// such as cn, clsx, twMerge and cva.
package scanner

// Origin says where a class string was found.
type Origin string

const (
	OriginAttribute Origin = "attribute"
	OriginCall      Origin = "call"
	OriginVariant   Origin = "variant"
)

// ClassSource is one class string and its location.
type ClassSource struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Classes string `json:"classes"`
	Origin  Origin `json:"origin"`

	// Callee is the attribute or helper name ("className", "cn", "cva").
	Callee string `json:"callee"`

	// Binding is the variable a cva()/tv() call is assigned to, e.g.
	// "buttonVariants".
	Binding string `json:"binding,omitempty"`

	// Variant and Value are the variants key and value for strings inside a
	// cva()/tv() variants block.
	Variant string `json:"variant,omitempty"`
	Value   string `json:"value,omitempty"`
}

// ScanConfig selects the files to scan, relative to the scan root.
type ScanConfig struct {
	Include []string
	Exclude []string
}

// DefaultExclude skips build output and dependencies.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/*.d.ts",
	"**/*.test.*",
	"**/*.stories.*",
}

// ScanStats reports how a scan went.
type ScanStats struct {
	FilesDiscovered  int   `json:"filesDiscovered"`
	FilesScanned     int   `json:"filesScanned"`
	FilesFailed      int   `json:"filesFailed"`
	ClassStrings     int   `json:"classStrings"`
	ComponentUsages  int   `json:"componentUsages"`
	DiscoveryTimeMs  int64 `json:"discoveryTimeMs"`
	ExtractionTimeMs int64 `json:"extractionTimeMs"`
	TotalTimeMs      int64 `json:"totalTimeMs"`
}

// ScanResult is the output of Scanner.Scan, sorted by file and position.
type ScanResult struct {
	Sources []ClassSource    `json:"sources"`
	Usages  []ComponentUsage `json:"usages"`
	Stats   ScanStats        `json:"stats"`
}

// Strings returns the raw class strings, e.g. for the opacity extractor.
func Strings(sources []ClassSource) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Classes
	}
	return out
}
