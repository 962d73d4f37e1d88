package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/pkg/logger"
)

func TestNew_JSONConServicioYVersion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "shop-assistant", Version: "1.2.3", Output: &buf})

	log.Info().Str("k", "v").Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shop-assistant", line["service"])
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "hola", line["message"])
	assert.Equal(t, "v", line["k"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	log.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	c := log.Component("tryon")
	c.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"tryon"`)
}
