package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "INFO", Service: "goldfolio", Out: &buf})

	log.Named("deposits").WithField("request_id", "abc").Info().Str("bank", "Banco Nación").Msg("boleta creada")
	log.Debug().Msg("no debe salir")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "goldfolio", line["service"])
	assert.Equal(t, "deposits", line["component"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "boleta creada", line["message"])
}

func TestNew_NivelWarning(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warning", Out: &buf})
	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())
	log.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestFromContext(t *testing.T) {
	fallback := logger.Nop()
	assert.Same(t, fallback, logger.FromContext(context.Background(), fallback))

	scoped := fallback.WithField("request_id", "r1")
	ctx := scoped.WithContext(context.Background())
	assert.Same(t, scoped, logger.FromContext(ctx, fallback))
	assert.NotNil(t, logger.FromContext(context.Background(), nil))
}
