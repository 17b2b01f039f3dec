package scanner

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s := NewScanner(logger, Options{Workers: 2})
	t.Cleanup(func() { s.Close() })
	return s
}

func extract(t *testing.T, path, source string) []ClassSource {
	t.Helper()
	found, err := newTestScanner(t).Extractor().ExtractFile(path, []byte(source))
	require.NoError(t, err)
	return found
}

func classesOf(sources []ClassSource) []string {
	return Strings(sources)
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// --- Extraction ---

func TestExtract_JSXAttribute(t *testing.T) {
	src := `export function Card() {
  return <div className="h-9 px-3 bg-kumo-brand">hi</div>;
}
`
	found := extract(t, "card.tsx", src)
	require.Len(t, found, 1)
	assert.Equal(t, "h-9 px-3 bg-kumo-brand", found[0].Classes)
	assert.Equal(t, OriginAttribute, found[0].Origin)
	assert.Equal(t, "className", found[0].Callee)
	assert.Equal(t, 2, found[0].Line)
	assert.Equal(t, "card.tsx", found[0].File)
}

func TestExtract_ClassAttributeInJSX(t *testing.T) {
	found := extract(t, "label.jsx", `const Label = () => <span class="text-kumo-subtle" id="x" />;`)
	assert.Equal(t, []string{"text-kumo-subtle"}, classesOf(found))
}

func TestExtract_HelperArguments(t *testing.T) {
	src := `const c = cn(
  "rounded-lg",
  active && "bg-kumo-brand/70",
  variant === "primary" ? "text-white" : "text-kumo-default",
  clsx({ "ring ring-kumo-line": focused }),
);
`
	found := extract(t, "classes.ts", src)
	assert.Equal(t, []string{
		"rounded-lg",
		"bg-kumo-brand/70",
		"text-white",
		"text-kumo-default",
		"ring ring-kumo-line",
	}, classesOf(found))

	assert.Equal(t, "cn", found[0].Callee)
	assert.Equal(t, "clsx", found[4].Callee)
}

func TestExtract_HelperInsideAttribute(t *testing.T) {
	src := `export const A = ({ tone }) => <a className={twMerge("underline", tone)} />;`
	found := extract(t, "a.tsx", src)
	require.Len(t, found, 1)
	assert.Equal(t, "underline", found[0].Classes)
	assert.Equal(t, OriginCall, found[0].Origin)
	assert.Equal(t, "twMerge", found[0].Callee)
}

func TestExtract_TemplateLiteral(t *testing.T) {
	found := extract(t, "t.tsx", "const x = <div className={`h-9 ${size} px-3`} />;")
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Classes, "h-9 ")
	assert.Contains(t, found[0].Classes, " px-3")
	assert.NotContains(t, found[0].Classes, "size")
}

func TestExtract_IgnoresOtherCalls(t *testing.T) {
	found := extract(t, "x.ts", `console.log("bg-kumo-brand"); const y = format("text-white");`)
	assert.Empty(t, found)
}

// --- cva / tv ---

func TestExtract_CVAVariants(t *testing.T) {
	src := `import { cva } from "class-variance-authority";

export const buttonVariants = cva("inline-flex items-center", {
  variants: {
    variant: {
      primary: "bg-kumo-brand text-white",
      "outline": "border border-kumo-line",
    },
    size: {
      sm: "h-7 px-2.5",
    },
  },
  compoundVariants: [{ variant: "primary", size: "sm", class: "font-semibold" }],
  defaultVariants: { variant: "primary", size: "sm" },
});
`
	found := extract(t, "button.tsx", src)
	require.Len(t, found, 5)

	assert.Equal(t, "inline-flex items-center", found[0].Classes)
	assert.Equal(t, OriginVariant, found[0].Origin)
	assert.Equal(t, "buttonVariants", found[0].Binding)
	assert.Empty(t, found[0].Variant)

	assert.Equal(t, "bg-kumo-brand text-white", found[1].Classes)
	assert.Equal(t, "variant", found[1].Variant)
	assert.Equal(t, "primary", found[1].Value)

	assert.Equal(t, "outline", found[2].Value)
	assert.Equal(t, "size", found[3].Variant)
	assert.Equal(t, "sm", found[3].Value)

	assert.Equal(t, "font-semibold", found[4].Classes)
	assert.Empty(t, found[4].Variant)
}

func TestExtract_TVConfig(t *testing.T) {
	src := `const badge = tv({
  base: "rounded-full px-2",
  variants: { tone: { info: "bg-kumo-info-tint" } },
});
`
	found := extract(t, "badge.ts", src)
	require.Len(t, found, 2)
	assert.Equal(t, "rounded-full px-2", found[0].Classes)
	assert.Equal(t, "badge", found[0].Binding)
	assert.Equal(t, "tone", found[1].Variant)
	assert.Equal(t, "info", found[1].Value)
}

// --- Scan ---

func TestScan_DiscoversAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.tsx", `export const B = () => <b className="text-kumo-strong" />;`)
	writeFile(t, root, "src/a.ts", `export const a = cn("bg-kumo-base", "ring ring-kumo-line");`)
	writeFile(t, root, "src/readme.md", `className="ignored"`)
	writeFile(t, root, "node_modules/pkg/index.js", `cn("bg-red-500")`)

	res, err := newTestScanner(t).Scan(root, ScanConfig{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats.FilesDiscovered)
	assert.Equal(t, 2, res.Stats.FilesScanned)
	assert.Equal(t, 3, res.Stats.ClassStrings)
	assert.Equal(t, []string{"bg-kumo-base", "ring ring-kumo-line", "text-kumo-strong"}, classesOf(res.Sources))
	assert.Equal(t, "a.ts", filepath.Base(res.Sources[0].File))
}

func TestScan_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ui/button.tsx", `<i className="h-9" />`)
	writeFile(t, root, "ui/button.stories.tsx", `<i className="h-10" />`)
	writeFile(t, root, "docs/page.tsx", `<i className="h-11" />`)

	res, err := newTestScanner(t).Scan(root, ScanConfig{Include: []string{"ui/**/*.tsx"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"h-9"}, classesOf(res.Sources))
}

func TestScan_InvalidPattern(t *testing.T) {
	_, err := newTestScanner(t).Scan(t.TempDir(), ScanConfig{Include: []string{"[invalid"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovery failed")
}

func TestScanFiles_RereadsChangedFile(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "c.tsx", `<i className="h-9" />`)
	s := newTestScanner(t)

	found, err := s.ScanFiles([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{"h-9"}, classesOf(found.Sources))

	require.NoError(t, os.WriteFile(path, []byte(`<i className="h-10 w-10" />`), 0644))
	found, err = s.ScanFiles([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{"h-10 w-10"}, classesOf(found.Sources))
}

// --- Component usages ---

func TestExtract_ComponentUsages(t *testing.T) {
	src := `export function Page() {
  return (
    <Dialog open>
      <Button variant="primary" size={size} className="mt-2">Save</Button>
      <div><Badge variant="beta" /></div>
    </Dialog>
  );
}
`
	fx, err := newTestScanner(t).Extractor().Extract("page.tsx", []byte(src))
	require.NoError(t, err)
	require.Len(t, fx.Usages, 3)

	dialog, button, badge := fx.Usages[0], fx.Usages[1], fx.Usages[2]
	assert.Equal(t, "Dialog", dialog.Component)
	assert.Equal(t, map[string]string{"open": "true"}, dialog.Props)
	assert.Empty(t, dialog.Parent)

	assert.Equal(t, "Button", button.Component)
	assert.Equal(t, "primary", button.Props["variant"])
	assert.Equal(t, "", button.Props["size"])
	assert.Equal(t, "Dialog", button.Parent)
	assert.Equal(t, 4, button.Line)
	assert.Equal(t, "page.tsx", button.File)

	assert.Equal(t, "Badge", badge.Component)
	assert.Equal(t, "Dialog", badge.Parent)

	require.Len(t, fx.Sources, 1)
	assert.Equal(t, "mt-2", fx.Sources[0].Classes)
}

func TestScan_CollectsUsages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.tsx", `<Switch checked />`)
	writeFile(t, root, "a.tsx", `<Button variant="ghost" />`)

	res, err := newTestScanner(t).Scan(root, ScanConfig{})
	require.NoError(t, err)
	require.Len(t, res.Usages, 2)
	assert.Equal(t, "Button", res.Usages[0].Component)
	assert.Equal(t, "Switch", res.Usages[1].Component)
	assert.Equal(t, 2, res.Stats.ComponentUsages)
}
