package httpclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

func TestResolveConfigDefaults(t *testing.T) {
	cfg := resolveConfig(nil)
	def := config.DefaultRestyConfig()

	assert.Equal(t, def.RetryCount, cfg.RetryCount)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.False(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Empty(t, cfg.Proxy)
}

func TestResolveConfigOverrides(t *testing.T) {
	verify := false
	debug := true
	cfg := resolveConfig(&config.HTTPClient{
		Debug:           &debug,
		RetryCount:      7,
		Timeout:         2 * time.Second,
		TLSClientConfig: config.TLSClientConfig{Verify: &verify},
		Proxy:           config.Proxy{Host: "proxy.local", Port: 3128},
	})

	assert.True(t, cfg.Debug)
	assert.Equal(t, 7, cfg.RetryCount)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, config.DefaultRestyConfig().RetryWaitTime, cfg.RetryWaitTime)
	assert.True(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
}

func TestNew(t *testing.T) {
	client := New(nil, &config.Config{HTTPClient: config.HTTPClient{RetryCount: 2}})
	assert.Equal(t, 2, client.RetryCount)
}
