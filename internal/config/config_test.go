package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sir", cfg.Model)
	assert.Equal(t, "rk45", cfg.Integrator)
	assert.Positive(t, cfg.Dt)
	assert.Positive(t, cfg.Duration)
	assert.Positive(t, cfg.Tolerance)
	assert.InDelta(t, 1.0, cfg.Init.S+cfg.Init.I+cfg.Init.R, 1e-12)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "seir"
	cfg.Duration = 180
	cfg.Disease.Beta = 0.42
	cfg.Disease.Sigma = 0.19
	cfg.Controller = "lockdown"
	cfg.Intervention.Trigger = 0.05

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Model, loaded.Model)
	assert.Equal(t, cfg.Duration, loaded.Duration)
	assert.Equal(t, cfg.Disease.Beta, loaded.Disease.Beta)
	assert.Equal(t, cfg.Disease.Sigma, loaded.Disease.Sigma)
	assert.Equal(t, cfg.Intervention.Trigger, loaded.Intervention.Trigger)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sir", "textbook")
	require.NotNil(t, cfg)

	assert.Equal(t, 1.2, cfg.Disease.Beta)
	assert.Equal(t, 1.0, cfg.Disease.Gamma)
	assert.Equal(t, 20.0, cfg.Duration)
	assert.Equal(t, 0.99, cfg.Init.S)
}

func TestGetPresetNotFound(t *testing.T) {
	assert.Nil(t, GetPreset("sir", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "textbook"))
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sir")
	assert.NotEmpty(t, presets)
	assert.Contains(t, presets, "textbook")
	assert.Contains(t, presets, "lockdown-demo")

	assert.Nil(t, ListPresets("nonexistent"))
}

func TestInitStateDimensions(t *testing.T) {
	tests := []struct {
		model string
		dim   int
	}{
		{"sir", 3},
		{"sis", 2},
		{"seir", 4},
		{"sird", 4},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model
		assert.Len(t, cfg.InitState(), tt.dim, tt.model)
	}
}

func TestInitStateLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "seir"
	cfg.Init = InitConfig{S: 0.9, E: 0.05, I: 0.04, R: 0.01}

	x := cfg.InitState()
	assert.Equal(t, []float64{0.9, 0.05, 0.04, 0.01}, x)
}
