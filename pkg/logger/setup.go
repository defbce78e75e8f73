package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/fast-action-client/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger global a partir da seção logging do YAML,
// escrevendo em stdout.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return New(os.Stdout, cfg)
}

// New cria o logger sobre out. Com logging desabilitado a saída é descartada.
func New(out io.Writer, cfg config.LoggingConf) zerolog.Logger {
	// Nível default: info
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "fast-action-client").
		Logger()
}

// ForService deriva um logger com o nome do serviço (usado pelo dispatcher).
func ForService(l zerolog.Logger, service string) zerolog.Logger {
	return l.With().Str("service", service).Logger()
}
