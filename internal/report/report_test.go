package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

type node syntax.Pos

func (n node) Pos() syntax.Pos { return syntax.Pos(n) }

func at(file string, line, col int) node {
	return node{File: file, Line: line, Column: col}
}

func TestCollectorEcho(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewCollector(&buf, true, "/work/api")
	c.Emit(at("src/users.controller.ts", 7, 3), "Summary of endpoint is empty", model.InformationError)
	c.Emit(at("/abs/a.ts", 1, 1), "x", model.ParamError)

	assert.Equal(t,
		"file:///work/api/src/users.controller.ts:7:3 Summary of endpoint is empty\n"+
			"file:///abs/a.ts:1:1 x\n",
		buf.String())

	state := c.State()
	require.Equal(t, 2, state.Count())
	assert.Equal(t, model.Diagnostic{
		File:    "src/users.controller.ts",
		Line:    7,
		Column:  3,
		Message: "Summary of endpoint is empty",
		Kind:    model.InformationError,
	}, state.Diagnostics[0])
}

func TestCollectorQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewCollector(&buf, false, "")
	c.Emit(at("a.ts", 1, 1), "m", model.PropertyError)
	assert.Empty(t, buf.String())
	assert.Equal(t, 1, c.State().Count())
}

func TestCollectorClearKeepsOldState(t *testing.T) {
	t.Parallel()

	c := NewCollector(nil, true, "")
	c.Emit(at("a.ts", 1, 1), "first", model.PropertyError)
	first := c.State()

	c.Clear()
	assert.Equal(t, 0, c.State().Count())
	c.Emit(at("b.ts", 2, 2), "second", model.ParamError)

	require.Equal(t, 1, first.Count())
	assert.Equal(t, "first", first.Diagnostics[0].Message)
	assert.Equal(t, "second", c.State().Diagnostics[0].Message)
}

func sampleState() *model.RunState {
	s := model.NewRunState()
	s.Add(model.Diagnostic{File: "src/b.ts", Line: 3, Column: 5, Kind: model.PropertyError, Message: "The 'name' field does not have 'example'"})
	s.Add(model.Diagnostic{File: "src/a.ts", Line: 9, Column: 3, Kind: model.InformationError, Message: "Summary of endpoint is empty"})
	s.Add(model.Diagnostic{File: "src/b.ts", Line: 1, Column: 1, Kind: model.PropertyError, Message: "The 'id' field does not have 'type'"})
	return s
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"text", "TOON", "Json"} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, strings.ToLower(in), string(f))
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, "api", sampleState()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "src/a.ts", lines[0])
	assert.Contains(t, lines[1], "9:3")
	assert.Contains(t, lines[1], "Summary of endpoint is empty")
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "src/b.ts", lines[3])
	assert.Contains(t, lines[4], "'name' field")
	assert.Contains(t, lines[5], "'id' field")
	assert.Equal(t, "3 problems (1 InformationError, 2 PropertyError)", lines[7])
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, "api", sampleState()))

	var got struct {
		Root        string             `json:"root"`
		Total       int                `json:"total"`
		Counts      map[string]int     `json:"counts"`
		Diagnostics []model.Diagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "api", got.Root)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, map[string]int{"InformationError": 1, "ParamError": 0, "PropertyError": 2}, got.Counts)
	require.Len(t, got.Diagnostics, 3)
	assert.Equal(t, "src/a.ts", got.Diagnostics[0].File)
	assert.Equal(t, 3, got.Diagnostics[1].Line)

	var again bytes.Buffer
	require.NoError(t, Write(&again, JSON, "api", sampleState()))
	assert.Equal(t, buf.String(), again.String())
}

func TestWriteTOON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, TOON, "api", sampleState()))
	assert.True(t, strings.HasPrefix(buf.String(), "root: api\ntotal: 3\n"))
	assert.Contains(t, buf.String(), "diagnostics[3]{file,line,column,kind,message}:")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no problems found", Summary(model.NewRunState()))

	s := model.NewRunState()
	s.Add(model.Diagnostic{Kind: model.ParamError})
	assert.Equal(t, "1 problem (1 ParamError)", Summary(s))
}
