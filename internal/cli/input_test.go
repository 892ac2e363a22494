package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, noFilter bool) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	log.SetLevel(log.InfoLevel)

	b := dictionary.NewBuilder()
	_, err := b.AddFrom(strings.NewReader("ale\nlea\nleap\npale\nplate\nhat\ntan\nthan\n"))
	require.NoError(t, err)
	ix, err := b.Build()
	require.NoError(t, err)

	var out bytes.Buffer
	return NewInputHandlerWithOutput(solver.New(ix), noFilter, false, "", &out), &out
}

func TestHandleInputGroups(t *testing.T) {
	h, out := newHandler(t, false)
	h.handleInput("leapt")

	text := out.String()
	assert.Contains(t, text, "Found 5 words for 'leapt'")
	assert.Contains(t, text, "3 letters (2)")
	assert.Contains(t, text, "ale lea")
	assert.Contains(t, text, "4 letters (2)")
	assert.Contains(t, text, "leap pale")
	assert.Contains(t, text, "5 letters (1)")
	assert.NotContains(t, text, "solved in")
	assert.Equal(t, 1, h.requestCount)
}

func TestHandleInputSanitizes(t *testing.T) {
	h, out := newHandler(t, false)
	h.handleInput("L.E.A.P.T")
	assert.Contains(t, out.String(), "Found 5 words for 'leapt'")
}

func TestHandleInputNoFilter(t *testing.T) {
	h, out := newHandler(t, true)
	h.handleInput("le apt")
	assert.Contains(t, out.String(), "Cannot solve")
	assert.NotContains(t, out.String(), "Found")
}

func TestHandleInputTooShort(t *testing.T) {
	h, out := newHandler(t, false)
	h.handleInput("a-l-e")
	assert.Contains(t, out.String(), "Need at least 4 letters, got 3")
}

func TestHandleInputNoWords(t *testing.T) {
	h, out := newHandler(t, false)
	h.handleInput("zzzz")
	assert.Contains(t, out.String(), "No words found")
}

func TestHandleInputTiming(t *testing.T) {
	h, out := newHandler(t, false)
	h.showTiming = true
	h.handleInput("than")
	assert.Contains(t, out.String(), "solved in")
}

func TestFarewellReportsLookups(t *testing.T) {
	h, out := newHandler(t, false)
	h.handleInput("leapt")
	h.handleInput("hat")
	out.Reset()

	h.farewell()
	assert.Contains(t, out.String(), "exiting after 2 lookups")
}
