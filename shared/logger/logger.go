package logger

import (
	"io"
	"os"
	"rentdesk/config"
	"rentdesk/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// New builds the service logger. Production emits JSON lines for the log
// collector; every other environment gets the human-readable console writer.
func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	return ctx.Logger()
}

// Level parses the configured level, falling back to info.
func Level(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return defaultLevel
	}

	return level
}

// Configure installs the service logger as the global zerolog logger.
func Configure(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(Level(cfg))

	log.Logger = New(cfg, os.Stdout)

	log.Info().
		Str("env", cfg.Server.Env).
		Str("level", zerolog.GlobalLevel().String()).
		Msg("logger configured")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
