package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "sweetbite-api", Out: &buf})

	ledger := l.Component("ledger")
	ledger.Debug().Msg("no se escribe")
	ledger.Info().Str("ingredient", "Harina").Msg("movimiento aplicado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sweetbite-api", entry["service"])
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, "Harina", entry["ingredient"])
	assert.Equal(t, "movimiento aplicado", entry["message"])
}
