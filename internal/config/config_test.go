package config

import (
	"runtime"
	"testing"

	"arrowview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "ARROWVIEW_HEAD_ROWS", "ARROWVIEW_WORKERS",
		"ARROWVIEW_PRECISION", "ARROWVIEW_QUANTILE", "ARROWVIEW_WIDTH",
		"ARROWVIEW_SHEET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Log.Level)
	assert.Equal(t, 5, cfg.View.HeadRows)
	assert.Equal(t, runtime.NumCPU(), cfg.Describe.Workers)
	assert.Equal(t, 3, cfg.Describe.Precision)
	assert.Equal(t, QuantileLinear, cfg.Describe.Quantile)
	assert.Equal(t, 0, cfg.Terminal.Width)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARROWVIEW_HEAD_ROWS", "12")
	t.Setenv("ARROWVIEW_WORKERS", "2")
	t.Setenv("ARROWVIEW_QUANTILE", "NEAREST")
	t.Setenv("ARROWVIEW_WIDTH", "140")
	t.Setenv("ARROWVIEW_SHEET", "Orders")
	t.Setenv("ARROWVIEW_PRECISION", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.View.HeadRows)
	assert.Equal(t, 2, cfg.Describe.Workers)
	assert.Equal(t, QuantileNearest, cfg.Describe.Quantile)
	assert.Equal(t, 140, cfg.Terminal.Width)
	assert.Equal(t, "Orders", cfg.View.Sheet)
	assert.Equal(t, 3, cfg.Describe.Precision, "unparsable values fall back to the default")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"ARROWVIEW_HEAD_ROWS", "-1"},
		{"ARROWVIEW_WORKERS", "0"},
		{"ARROWVIEW_PRECISION", "16"},
		{"ARROWVIEW_QUANTILE", "cubic"},
		{"ARROWVIEW_WIDTH", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
