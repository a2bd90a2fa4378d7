package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/go-forecast-eval/internal/config"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	testData := map[string]struct {
		format    string
		level     zerolog.Level
		logDebug  bool
		expectOut bool
		json      bool
	}{
		"json info drops debug": {
			format: "json",
			level:  zerolog.InfoLevel,
		},
		"json debug": {
			format:    "json",
			level:     zerolog.DebugLevel,
			logDebug:  true,
			expectOut: true,
			json:      true,
		},
		"console debug": {
			format:    "console",
			level:     zerolog.DebugLevel,
			logDebug:  true,
			expectOut: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, td.format, td.level)
			log.Debug().Int("rows", 3).Msg("fitting model")

			if !td.expectOut {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), "fitting model")
			if td.json {
				var line map[string]any
				require.Nil(t, json.Unmarshal(buf.Bytes(), &line))
				assert.Equal(t, "debug", line["level"])
				assert.Equal(t, 3.0, line["rows"])
				assert.Contains(t, line, "time")
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eval.log")
	log, closer, err := New(config.LoggingConfig{Level: "warn", Format: "json", Output: path})
	require.Nil(t, err)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	require.Nil(t, closer.Close())

	out, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.NotContains(t, string(out), "dropped")
	assert.Contains(t, string(out), "kept")
}

func TestNewStandardStreams(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", ""} {
		t.Run(output, func(t *testing.T) {
			_, closer, err := New(config.LoggingConfig{Level: "bogus", Format: "json", Output: output})
			require.Nil(t, err)
			assert.Nil(t, closer.Close())
		})
	}
}
