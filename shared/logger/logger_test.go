package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"rentdesk/config"
	"rentdesk/shared/constant"
	"rentdesk/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(env, level string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "rentdesk"
	cfg.Server.Env = env
	cfg.Server.LogLevel = level

	return cfg
}

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(newConfig(constant.ServerEnvProduction, "info"), &buf)
	l.Info().Str("tenant_id", "tenant-1").Msg("rental created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "rentdesk", entry["service"])
	assert.Equal(t, "tenant-1", entry["tenant_id"])
	assert.Equal(t, "rental created", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewDevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(newConfig(constant.ServerEnvDevelopment, "debug"), &buf)
	l.Info().Msg("rental created")

	assert.Contains(t, buf.String(), "rental created")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for raw, expected := range tests {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, expected, logger.Level(newConfig("", raw)))
		})
	}
}

func TestConfigure(t *testing.T) {
	original, originalLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	logger.Configure(newConfig(constant.ServerEnvProduction, "warn"))

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("failed to insert data (rental)"))

	assert.Contains(t, buf.String(), "failed to insert data (rental)")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
