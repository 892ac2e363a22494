package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesApplyLeavesBaseAlone(t *testing.T) {
	base := DefaultConfig()
	off := false
	o := Overrides{
		MinLetters:   3,
		MaxLetters:   9,
		EnableFilter: &off,
		DictPath:     "/tmp/other.json",
		DictFormat:   "json",
		MetricsAddr:  ":9464",
	}

	got := o.Apply(base)
	assert.Equal(t, 3, got.Server.MinLetters)
	// max is clamped to the longest signature
	assert.Equal(t, 7, got.Server.MaxLetters)
	assert.False(t, got.Server.EnableFilter)
	assert.Equal(t, "/tmp/other.json", got.Dict.Path)
	assert.Equal(t, "json", got.Dict.Format)
	assert.Equal(t, ":9464", got.Server.MetricsAddr)

	assert.Equal(t, DefaultConfig(), base)
}

func TestOverridesEmptyIsIdentity(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Overrides{}.Apply(DefaultConfig()))
}

func TestOverridesRelease(t *testing.T) {
	off := false
	o := Overrides{MinLetters: 5, MaxLetters: 6, EnableFilter: &off, DictPath: "x.json"}
	n := 3
	o.Release(&n, nil, &off)

	assert.Zero(t, o.MinLetters)
	assert.Equal(t, 6, o.MaxLetters)
	assert.Nil(t, o.EnableFilter)
	assert.Equal(t, "x.json", o.DictPath)
}

func TestOverridesNotSavedByUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	file, err := InitConfig(path)
	require.NoError(t, err)

	off := false
	effective := Overrides{EnableFilter: &off, DictPath: "/tmp/other.json"}.Apply(file)
	require.False(t, effective.Server.EnableFilter)

	n := 5
	require.NoError(t, file.Update(path, &n, nil, nil))

	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Server.MinLetters)
	assert.True(t, saved.Server.EnableFilter)
	assert.Equal(t, "sorted_uniques.json", saved.Dict.Path)
}
