package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/figmagen/pkg/parser"
)

func TestGetQuery_CompilesForEveryGrammar(t *testing.T) {
	qm := NewQueryManager(nil)
	defer qm.Close()

	for _, g := range parser.Grammars() {
		q, err := qm.GetQuery(g)
		require.NoError(t, err, g.String())
		require.NotNil(t, q)

		again, err := qm.GetQuery(g)
		require.NoError(t, err)
		assert.Same(t, q, again, "queries are cached per grammar")
	}
}

func TestGetQuery_UnknownGrammar(t *testing.T) {
	qm := NewQueryManager(nil)
	defer qm.Close()

	_, err := qm.GetQuery(parser.GrammarUnknown)
	assert.Error(t, err)
}

func TestExecuteQuery_Captures(t *testing.T) {
	pm := parser.NewParserManagerWithSize(nil, 1)
	defer pm.Close()
	qm := NewQueryManager(nil)
	defer qm.Close()

	source := []byte(`const el = <div className={cn("h-9")} />;`)
	tree, err := pm.Parse(source, parser.GrammarTSX)
	require.NoError(t, err)
	defer tree.Close()

	q, err := qm.GetQuery(parser.GrammarTSX)
	require.NoError(t, err)
	matches, err := qm.ExecuteQuery(tree, q, source)
	require.NoError(t, err)

	var calls, attrs int
	for _, m := range matches {
		switch int(m.PatternIndex) {
		case PatternCall:
			calls++
			assert.Equal(t, "cn", m.Captures[0].Text)
			assert.Equal(t, "call", m.Captures[0].Category)
			assert.Equal(t, uint32(1), m.Captures[0].Location.StartLine)
		case PatternJSX:
			attrs++
			assert.Equal(t, "className", m.Captures[0].Text)
		}
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attrs)
}

func TestExecuteQuery_NilArguments(t *testing.T) {
	qm := NewQueryManager(nil)
	defer qm.Close()

	_, err := qm.ExecuteQuery(nil, nil, nil)
	assert.Error(t, err)
}

func TestParseCaptureName(t *testing.T) {
	cat, field := parseCaptureName("attr.value")
	assert.Equal(t, "attr", cat)
	assert.Equal(t, "value", field)

	cat, field = parseCaptureName("plain")
	assert.Equal(t, "plain", cat)
	assert.Empty(t, field)
}
