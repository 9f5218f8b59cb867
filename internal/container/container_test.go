package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrowview/adapters/stats/engine"
	"arrowview/internal/config"
	"arrowview/internal/errors"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "WARN"
	cfg.View.HeadRows = 5
	cfg.Describe.Workers = 2
	cfg.Describe.Precision = 3
	cfg.Describe.Quantile = config.QuantileNearest
	return cfg
}

func TestNewWiresComponents(t *testing.T) {
	c, err := New(validConfig(), nil)
	require.NoError(t, err)

	assert.NotNil(t, c.Source)
	assert.NotNil(t, c.Exporter)
	assert.NotNil(t, c.Assembler)
	assert.NotNil(t, c.Viewer)
	assert.Equal(t, engine.Nearest, c.Compute.Interpolation())
	assert.NotNil(t, c.Converter("zstd"))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	cfg := validConfig()
	cfg.Describe.Workers = 0
	_, err = New(cfg, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
