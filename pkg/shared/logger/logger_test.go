package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  hclog.Level
	}{
		{name: "defaults to info", want: hclog.Info},
		{name: "config level", level: "debug", want: hclog.Debug},
		{name: "env wins over config", env: "trace", level: "error", want: hclog.Trace},
		{name: "unknown level falls back", level: "loud", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tt.env)
			cfg := &config.Config{Logger: config.Logger{Level: tt.level}}

			var out bytes.Buffer
			assert.Equal(t, tt.want, determineLogLevel(cfg, &out))
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	enabled := true
	cfg := &config.Config{Logger: config.Logger{Level: "info", JSONFormat: &enabled}}

	var out bytes.Buffer
	l := newLogger(cfg, "test", &out)
	l.Info("resolved", "finding", 3)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &raw))
	assert.Equal(t, "resolved", raw["@message"])
	assert.Equal(t, float64(3), raw["finding"])
}
