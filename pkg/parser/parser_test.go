package parser

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, size int) *ParserManager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	pm := NewParserManagerWithSize(logger, size)
	t.Cleanup(func() { pm.Close() })
	return pm
}

func TestGrammarForPath(t *testing.T) {
	cases := map[string]Grammar{
		"a.ts":           GrammarTypeScript,
		"a.mts":          GrammarTypeScript,
		"src/Button.TSX": GrammarTSX,
		"a.js":           GrammarJavaScript,
		"a.jsx":          GrammarJavaScript,
		"a.css":          GrammarUnknown,
		"Makefile":       GrammarUnknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, GrammarForPath(path), path)
	}
}

func TestParseGrammar(t *testing.T) {
	assert.Equal(t, GrammarTSX, ParseGrammar("TSX"))
	assert.Equal(t, GrammarJavaScript, ParseGrammar("jsx"))
	assert.Equal(t, GrammarUnknown, ParseGrammar("go"))
	assert.Equal(t, "unknown", GrammarUnknown.String())
}

func TestParse_EachGrammar(t *testing.T) {
	pm := newTestManager(t, 2)

	sources := map[Grammar]string{
		GrammarTypeScript: "const x: number = 1;",
		GrammarTSX:        "const el = <div className=\"h-9\">hi</div>;",
		GrammarJavaScript: "const el = <span class=\"x\" />;",
	}
	for g, src := range sources {
		tree, err := pm.Parse([]byte(src), g)
		require.NoError(t, err, g.String())
		assert.Equal(t, "program", tree.RootNode().Kind())
		assert.False(t, tree.RootNode().HasError(), g.String())
		tree.Close()
	}
}

func TestParse_TSXNeedsTSXGrammar(t *testing.T) {
	pm := newTestManager(t, 1)

	tree, err := pm.ParseFile([]byte("const el = <div>hi</div>;"), "a.tsx")
	require.NoError(t, err)
	defer tree.Close()
	assert.Contains(t, tree.RootNode().ToSexp(), "jsx_element")
}

func TestParse_Errors(t *testing.T) {
	pm := newTestManager(t, 1)

	_, err := pm.Parse([]byte("x"), GrammarUnknown)
	assert.Error(t, err)

	_, err = pm.ParseFile([]byte("x"), "style.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestParse_Concurrent(t *testing.T) {
	pm := newTestManager(t, 4)

	const goroutines = 50
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := pm.Parse([]byte("const x = cn('a', 'b');"), GrammarTypeScript)
			if err != nil {
				errs <- err
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	stats := pm.GetStats()
	assert.Equal(t, goroutines, stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, 4)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
}
