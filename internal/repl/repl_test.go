package repl

import (
	"bytes"
	"context"
	"path/filepath"
	"sageleaf/internal/history"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(input string, opts Options) string {
	var out bytes.Buffer
	Start(strings.NewReader(input), &out, opts)
	return out.String()
}

func TestStartEvaluatesLines(t *testing.T) {
	got := run("let x : Real = 2;\nadd x 3;\nadd;\nprint x;\n", Options{})
	expected := "Unit : Unit\n" +
		"5 : Real\n" +
		"Real -> Real -> Real\n" +
		"2\n" +
		"Unit : Unit\n"
	assert.Equal(t, expected, got)
}

func TestStartPrompt(t *testing.T) {
	got := run("1;\n", Options{Version: "0.1.0", Prompt: true})
	assert.Equal(t, "Sageleaf 0.1.0:\n>> 1 : Real\n>> ", got)
}

func TestStartReportsErrorsAndContinues(t *testing.T) {
	got := run("let : Real = 1;\nnope;\n1 2;\n7;\n", Options{})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Oops! That line did not parse:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\t[  1: 5]"), lines[1])
	assert.Equal(t, "error: identifier not found: nope", lines[2])
	assert.Equal(t, "error: cannot apply a value of non-function type Real", lines[3])
	assert.Equal(t, "7 : Real", lines[4])
}

func TestStartMetaCommands(t *testing.T) {
	got := run("let y : Real = 1;\n:env\n:quit\nprint 99;\n", Options{})
	assert.Contains(t, got, "Unit : Unit\n")
	assert.Contains(t, got, "y : Real\n")
	assert.Contains(t, got, "add : Real -> Real -> Real\n")
	assert.Contains(t, got, "print : Any -> Unit\n")
	assert.NotContains(t, got, "99")
}

func TestStartHistory(t *testing.T) {
	store, err := history.Open("bolt", filepath.Join(t.TempDir(), "history.bolt"))
	require.NoError(t, err)
	defer store.Close()

	got := run("let z : Real = 3;\nz z;\n:history\n", Options{History: store, Session: "t"})
	assert.Contains(t, got, "   1  let z : Real = 3  =>  Unit : Unit\n")
	assert.Contains(t, got, "   2  z z  =>  error: cannot apply a value of non-function type Real\n")

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, history.ModeRepl, records[0].Mode)
}

func TestStartHistoryDisabled(t *testing.T) {
	assert.Equal(t, "history is disabled\n", run(":history\n", Options{}))
}
