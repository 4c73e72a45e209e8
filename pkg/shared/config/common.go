package config

import (
	"crypto/tls"
	"path/filepath"
	"time"
)

const (
	DefaultResultFolder   = "./last-analysis/result"
	DefaultEdgesFile      = "TaintObjectPropagateEdge.csv"
	DefaultFindingsFile   = "LeakingTaintedInformation.csv"
	DefaultInformationURI = "https://github.com/chennbnbnb/JDoop-release"
)

// Report color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Path search strategies.
const (
	StrategyBFS = "bfs"
	StrategyDFS = "dfs"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Timeout          time.Duration
	TLSClientConfig  *tls.Config
	Proxy            string
}

// RestyHTTPClientConfig holds additional configuration settings for the resty http client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool
}

// DefaultHTTPConfig returns the base configuration applicable to all HTTP clients.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       3,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 5 * time.Second,
		Timeout:          30 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns the default resty configuration.
func DefaultRestyConfig() RestyHTTPClientConfig {
	return RestyHTTPClientConfig{
		BaseHTTPConfig: DefaultHTTPConfig(),
		Debug:          false,
	}
}

// ApplyDefaults fills every unset field with its default.
func ApplyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "INFO")

	cfg.Jdoop.ResultFolder = SetThen(cfg.Jdoop.ResultFolder, DefaultResultFolder)
	cfg.Jdoop.EdgesFile = SetThen(cfg.Jdoop.EdgesFile, DefaultEdgesFile)
	cfg.Jdoop.FindingsFile = SetThen(cfg.Jdoop.FindingsFile, DefaultFindingsFile)

	cfg.Report.Workers = SetThen(cfg.Report.Workers, 1)
	cfg.Report.Color = SetThen(cfg.Report.Color, ColorAuto)
	cfg.Report.Strategy = SetThen(cfg.Report.Strategy, StrategyBFS)
	cfg.Report.InformationURI = SetThen(cfg.Report.InformationURI, DefaultInformationURI)
}

// EdgesPath returns the configured location of the propagation edge relation.
func EdgesPath(cfg *Config) string {
	return filepath.Join(cfg.Jdoop.ResultFolder, cfg.Jdoop.EdgesFile)
}

// FindingsPath returns the configured location of the leak findings relation.
func FindingsPath(cfg *Config) string {
	return filepath.Join(cfg.Jdoop.ResultFolder, cfg.Jdoop.FindingsFile)
}
