package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json_format: true
jdoop:
  result_folder: /data/result
report:
  workers: 4
  strategy: dfs
http_client:
  retry_count: 5
  timeout: 10s
  tls_client_config:
    verify: false
publish:
  s3:
    bucket: reports
    region: eu-west-2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.False(t, GetBoolValue(cfg, "Logger.DisableTime", false))
	assert.Equal(t, 4, cfg.Report.Workers)
	assert.Equal(t, StrategyDFS, cfg.Report.Strategy)
	assert.Equal(t, ColorAuto, cfg.Report.Color)
	assert.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout)
	assert.False(t, GetBoolValue(cfg, "HTTPClient.TLSClientConfig.Verify", true))
	assert.Equal(t, filepath.Join("/data/result", DefaultEdgesFile), EdgesPath(cfg))
	assert.Equal(t, filepath.Join("/data/result", DefaultFindingsFile), FindingsPath(cfg))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, 1, cfg.Report.Workers)
	assert.Equal(t, StrategyBFS, cfg.Report.Strategy)
	assert.Equal(t, DefaultResultFolder, cfg.Jdoop.ResultFolder)
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultInformationURI, cfg.Report.InformationURI)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = LoadConfig(writeConfig(t, "report: [1, 2"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		errText string
	}{
		{name: "workers", mutate: func(c *Config) { c.Report.Workers = 0 }, errText: "workers"},
		{name: "color", mutate: func(c *Config) { c.Report.Color = "rainbow" }, wantErr: ErrUnknownColorMode},
		{name: "strategy", mutate: func(c *Config) { c.Report.Strategy = "astar" }, wantErr: ErrUnknownStrategy},
		{name: "retry count", mutate: func(c *Config) { c.HTTPClient.RetryCount = 50 }, errText: "retry_count"},
		{name: "timeout", mutate: func(c *Config) { c.HTTPClient.Timeout = time.Hour }, errText: "timeout"},
		{name: "s3 region", mutate: func(c *Config) { c.Publish.S3.Bucket = "b" }, errText: "region"},
		{name: "webhook scheme", mutate: func(c *Config) { c.Publish.Webhook.URL = "ftp://host" }, errText: "http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "x", SetThen("", "x"))
	assert.Equal(t, "y", SetThen("y", "x"))
	assert.Equal(t, 3, SetThen(0, 3))
	assert.Equal(t, time.Second, SetThen(time.Duration(0), time.Second))
}

func TestGetBoolValueNil(t *testing.T) {
	assert.True(t, GetBoolValue(nil, "Logger.JSONFormat", true))
	assert.True(t, GetBoolValue(&Config{}, "Logger.Unknown", true))
	assert.False(t, GetBoolValue(&Config{}, "Logger.JSONFormat", false))
}
