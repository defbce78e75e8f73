package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/raywall/fast-action-client/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("Default Level Info", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true, Level: "DEBUG"})
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, config.LoggingConf{Enabled: false})
		l.Info().Msg("teste")
		assert.Zero(t, buf.Len())
	})

	t.Run("JSON com serviço", func(t *testing.T) {
		var buf bytes.Buffer
		l := ForService(New(&buf, config.LoggingConf{Enabled: true, Format: "json"}), "ecs")
		l.Info().Str("action", "DescribeRegions").Msg("invocando")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ecs", entry["service"])
		assert.Equal(t, "fast-action-client", entry["component"])
		assert.Equal(t, "DescribeRegions", entry["action"])
	})

	t.Run("Debug filtrado em info", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, config.LoggingConf{Enabled: true, Level: "info"})
		l.Debug().Msg("escondido")
		assert.Zero(t, buf.Len())
	})
}
