package server

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testIndex(t *testing.T) *dictionary.Index {
	t.Helper()
	b := dictionary.NewBuilder()
	_, err := b.AddFrom(strings.NewReader("ale\nlea\nella\nleap\npale\nplate\nhat\ntan\nant\nthan\nnathan\n"))
	require.NoError(t, err)
	ix, err := b.Build()
	require.NoError(t, err)
	return ix
}

// run feeds msgs to a fresh server and returns its raw output messages,
// ready message first.
func run(t *testing.T, cfg *config.Config, msgs ...any) []msgpack.RawMessage {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range msgs {
		require.NoError(t, enc.Encode(m))
	}

	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(t), cfg, "", &in, &out)
	require.NoError(t, srv.Start())

	var responses []msgpack.RawMessage
	dec := msgpack.NewDecoder(&out)
	for {
		raw, err := dec.DecodeRaw()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		responses = append(responses, raw)
	}
	return responses
}

func decode[T any](t *testing.T, raw msgpack.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, msgpack.Unmarshal(raw, &v))
	return v
}

func TestReadyMessage(t *testing.T) {
	out := run(t, nil)
	require.Len(t, out, 1)
	assert.Equal(t, StatusResponse{Status: "ready"}, decode[StatusResponse](t, out[0]))
}

func TestSolve(t *testing.T) {
	out := run(t, nil,
		Request{ID: "1", Letters: "leapt"},
		Request{ID: "2", Action: ActionSolve, Letters: "nathan", Group: true},
	)
	require.Len(t, out, 3)

	first := decode[SolveResponse](t, out[1])
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, []string{"ale", "lea", "leap", "pale", "plate"}, first.Words)
	assert.Equal(t, 5, first.Count)
	assert.Nil(t, first.Groups)
	assert.GreaterOrEqual(t, first.TimeTaken, int64(0))

	second := decode[SolveResponse](t, out[2])
	assert.Equal(t, []string{"hat", "tan", "ant", "than", "nathan"}, second.Words)
	assert.Equal(t, map[int][]string{
		3: {"hat", "tan", "ant"},
		4: {"than"},
		6: {"nathan"},
	}, second.Groups)
}

func TestSolveFilter(t *testing.T) {
	out := run(t, nil, Request{ID: "f", Letters: "L-E-A-P-T!"})
	resp := decode[SolveResponse](t, out[1])
	assert.Equal(t, 5, resp.Count)

	cfg := config.DefaultConfig()
	cfg.Server.EnableFilter = false
	out = run(t, cfg, Request{ID: "nf", Letters: "lea pt"})
	e := decode[ErrorResponse](t, out[1])
	assert.Equal(t, "nf", e.ID)
	assert.Equal(t, 400, e.Code)
	assert.Contains(t, e.Error, "non-letters")
}

func TestSolveTooShort(t *testing.T) {
	out := run(t, nil, Request{ID: "s", Letters: "ale"})
	resp := decode[SolveResponse](t, out[1])
	assert.Equal(t, "s", resp.ID)
	assert.Empty(t, resp.Words)
	assert.Zero(t, resp.Count)
}

func TestSolveTooLong(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.EnableFilter = false
	out := run(t, cfg, Request{ID: "l", Letters: "plasters"})
	e := decode[ErrorResponse](t, out[1])
	assert.Equal(t, 400, e.Code)

	// with the filter on, extra letters are dropped instead
	out = run(t, nil, Request{ID: "l", Letters: "platehan"})
	resp := decode[SolveResponse](t, out[1])
	assert.Contains(t, resp.Words, "plate")
}

func TestErrors(t *testing.T) {
	out := run(t, nil,
		Request{ID: "m"},
		Request{ID: "u", Action: "dance"},
		42,
		Request{ID: "after", Action: ActionHealth},
	)
	require.Len(t, out, 5)

	missing := decode[ErrorResponse](t, out[1])
	assert.Equal(t, ErrorResponse{ID: "m", Error: "missing 'l' parameter", Code: 400}, missing)

	unknown := decode[ErrorResponse](t, out[2])
	assert.Equal(t, 404, unknown.Code)
	assert.Equal(t, "u", unknown.ID)

	garbage := decode[ErrorResponse](t, out[3])
	assert.Equal(t, 400, garbage.Code)

	// the stream survives a bad message
	assert.Equal(t, StatusResponse{ID: "after", Status: "ok"}, decode[StatusResponse](t, out[4]))
}

func TestInfo(t *testing.T) {
	out := run(t, nil, Request{ID: "i", Action: ActionInfo})
	info := decode[InfoResponse](t, out[1])
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, 11, info.Words)
	assert.Equal(t, 6, info.Signatures)
	assert.Equal(t, 4, info.MinLetters)
	assert.Equal(t, 7, info.MaxLetters)
	assert.True(t, info.EnableFilter)
}

func TestConfigAction(t *testing.T) {
	three := 3
	out := run(t, nil,
		Request{ID: "c", Action: ActionConfig, MinLetters: &three},
		Request{ID: "s", Letters: "ale"},
	)
	require.Len(t, out, 3)

	resp := decode[ConfigResponse](t, out[1])
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.MinLetters)

	solved := decode[SolveResponse](t, out[2])
	assert.Equal(t, []string{"ale", "lea"}, solved.Words)
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg, err := config.InitConfig(path)
	require.NoError(t, err)
	cfg.Server.ReloadEvery = 2

	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(t), cfg, path, strings.NewReader(""), &out)

	require.NoError(t, os.WriteFile(path, []byte("[server]\nmin_letters = 3\nreload_every = 2\n"), 0o644))

	srv.handleRequest(Request{ID: "1", Action: ActionHealth})
	assert.Equal(t, 4, srv.solver.MinLetters())
	srv.handleRequest(Request{ID: "2", Action: ActionHealth})
	assert.Equal(t, 3, srv.solver.MinLetters())
}

func TestFlagOverrideSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[server]\nmin_letters = 3\nreload_every = 1\n"), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	noFilter := false
	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(t), cfg, path, strings.NewReader(""), &out,
		WithOverrides(config.Overrides{MinLetters: 5, MaxLetters: 6, EnableFilter: &noFilter}))
	assert.Equal(t, 5, srv.solver.MinLetters())

	srv.handleRequest(Request{ID: "1", Action: ActionHealth})
	assert.Equal(t, 5, srv.solver.MinLetters())
	assert.Equal(t, 6, srv.solver.MaxLetters())
	assert.False(t, srv.config.Server.EnableFilter)
	assert.Equal(t, 3, srv.fileConfig.Server.MinLetters)
}

func TestConfigActionSavesFileValuesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg, err := config.InitConfig(path)
	require.NoError(t, err)

	noFilter := false
	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(t), cfg, path, strings.NewReader(""), &out,
		WithOverrides(config.Overrides{
			MinLetters:   5,
			EnableFilter: &noFilter,
			DictPath:     "/tmp/elsewhere.json",
			MetricsAddr:  ":9100",
		}))

	six := 6
	srv.handleRequest(Request{ID: "c", Action: ActionConfig, MaxLetters: &six})

	resp := decode[ConfigResponse](t, out.Bytes())
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 5, resp.MinLetters)
	assert.Equal(t, 6, resp.MaxLetters)
	assert.False(t, resp.EnableFilter)

	saved, err := config.LoadConfig(path)
	require.NoError(t, err)
	def := config.DefaultConfig()
	assert.Equal(t, 6, saved.Server.MaxLetters)
	assert.Equal(t, def.Server.MinLetters, saved.Server.MinLetters)
	assert.True(t, saved.Server.EnableFilter)
	assert.Equal(t, def.Dict.Path, saved.Dict.Path)
	assert.Empty(t, saved.Server.MetricsAddr)
}

func TestConfigActionReplacesFlagValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg, err := config.InitConfig(path)
	require.NoError(t, err)

	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(t), cfg, path, strings.NewReader(""), &out,
		WithOverrides(config.Overrides{MinLetters: 5}))

	three := 3
	srv.handleRequest(Request{ID: "c", Action: ActionConfig, MinLetters: &three})
	assert.Equal(t, 3, srv.solver.MinLetters())

	saved, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Server.MinLetters)
}
