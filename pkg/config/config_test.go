package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"WINDOW_START", "WINDOW_END", "SCAN_STEP", "DAYS", "PORT", "DEFAULT_RATE_LIMIT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, availability.DefaultWindow(), cfg.Window)
	assert.Equal(t, availability.DefaultStep, cfg.Step)
	assert.Equal(t, availability.DefaultDays, cfg.Days)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 10000, cfg.DefaultRateLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WINDOW_START", "7")
	t.Setenv("WINDOW_END", "20")
	t.Setenv("SCAN_STEP", "0.5")
	t.Setenv("DAYS", "Montag, Dienstag ,")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, availability.Window{Start: 7, End: 20}, cfg.Window)
	assert.Equal(t, availability.Hour(0.5), cfg.Step)
	assert.Equal(t, []string{"Montag", "Dienstag"}, cfg.Days)
}

func TestLoad_InvalidWindow(t *testing.T) {
	t.Setenv("WINDOW_START", "18")
	t.Setenv("WINDOW_END", "8")
	_, err := Load()
	assert.ErrorIs(t, err, availability.ErrInvalidWindow)
}

func TestLoad_InvalidStep(t *testing.T) {
	t.Setenv("WINDOW_START", "")
	t.Setenv("WINDOW_END", "")
	t.Setenv("SCAN_STEP", "-1")
	_, err := Load()
	assert.ErrorIs(t, err, availability.ErrInvalidStep)
}
