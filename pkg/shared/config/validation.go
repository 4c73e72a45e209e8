package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidatePublishConfig(&cfg.Publish); err != nil {
		return fmt.Errorf("YAML global config: publish directive is invalid: %w", err)
	}
	return nil
}

// ValidateReportConfig checks the report settings.
func ValidateReportConfig(report *Report) error {
	if report == nil {
		return fmt.Errorf("report configuration is nil")
	}
	if report.Workers < 1 || report.Workers > 256 {
		return fmt.Errorf("workers must be between 1 and 256: %d", report.Workers)
	}
	if err := ValidateColorMode(report.Color); err != nil {
		return err
	}
	if err := ValidateStrategy(report.Strategy); err != nil {
		return err
	}
	return nil
}

// ValidateColorMode checks a color mode value.
func ValidateColorMode(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownColorMode, mode)
}

// ValidateStrategy checks a path search strategy value.
func ValidateStrategy(strategy string) error {
	switch strategy {
	case StrategyBFS, StrategyDFS:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"retry_wait_time", httpConfig.RetryWaitTime},
		{"retry_max_wait_time", httpConfig.RetryMaxWaitTime},
		{"timeout", httpConfig.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.value, d.name, 100*time.Second); err != nil {
			return err
		}
	}

	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}

	return nil
}

// ValidatePublishConfig checks the report publishing destinations.
func ValidatePublishConfig(publish *Publish) error {
	if publish == nil {
		return fmt.Errorf("publish configuration is nil")
	}
	if publish.S3.Bucket != "" && publish.S3.Region == "" {
		return fmt.Errorf("s3 region must be set together with bucket %q", publish.S3.Bucket)
	}
	if publish.Webhook.URL != "" {
		u, err := url.Parse(publish.Webhook.URL)
		if err != nil {
			return fmt.Errorf("invalid webhook url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("webhook url must use http or https: %q", publish.Webhook.URL)
		}
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %s: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%s duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
// It ensures the host includes a scheme; adds "http" if missing.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if !strings.Contains(proxy.Host, "://") {
		proxy.Host = "http://" + proxy.Host
	}
	proxy.Host = strings.TrimRight(proxy.Host, "/")
	if _, err := url.Parse(proxy.Host); err != nil {
		return fmt.Errorf("invalid proxy host: %w", err)
	}

	if proxy.Port < 1 || proxy.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", proxy.Port)
	}
	return nil
}
