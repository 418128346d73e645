package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	data := []byte(`
defaults:
  resolution: 128
  width: 300
  axes: false
jobs:
  - formula: x^2 + y^2 = 1
    output: circle.png
  - name: wave
    formula: sin(x) * x
    viewport: [-10, -10, 10, 10]
    resolution: 256
    height: 200
    axes: true
    output: wave.png
`)
	config, err := ParseConfig(data)
	require.NoError(t, err)
	require.Len(t, config.Jobs, 2)

	circle := config.Jobs[0]
	assert.Equal(t, "job1", circle.Name)
	assert.Equal(t, []float64{-2, -2, 2, 2}, circle.Viewport)
	assert.Equal(t, 128, circle.Resolution)
	assert.Equal(t, 300, circle.Width)
	assert.Equal(t, 800, circle.Height)
	require.NotNil(t, circle.Axes)
	assert.False(t, *circle.Axes)

	wave := config.Jobs[1]
	assert.Equal(t, "wave", wave.Name)
	assert.Equal(t, []float64{-10, -10, 10, 10}, wave.Viewport)
	assert.Equal(t, 256, wave.Resolution)
	assert.Equal(t, 300, wave.Width)
	assert.Equal(t, 200, wave.Height)
	require.NotNil(t, wave.Axes)
	assert.True(t, *wave.Axes)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no jobs", "jobs: []\n", ErrNoJobs},
		{"no formula", "jobs:\n  - output: a.png\n", ErrMissingFormula},
		{"no output", "jobs:\n  - formula: x\n", ErrMissingOutput},
		{"bad viewport", "jobs:\n  - formula: x\n    output: a.png\n    viewport: [1, 0, 0, 1]\n", ErrInvalidViewport},
		{"short viewport", "jobs:\n  - formula: x\n    output: a.png\n    viewport: [0, 0, 1]\n", ErrInvalidViewport},
		{"bad resolution", "jobs:\n  - formula: x\n    output: a.png\n    resolution: -4\n", ErrInvalidResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig([]byte("jobs: [\n"))
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
