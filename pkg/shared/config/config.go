package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "config.yml"

// Config is the top-level YAML configuration of jdoop.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	Jdoop      Jdoop      `yaml:"jdoop"`
	Report     Report     `yaml:"report"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Publish    Publish    `yaml:"publish"`
}

// Logger holds logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Jdoop describes where the solver leaves its result relations.
type Jdoop struct {
	ResultFolder string `yaml:"result_folder"`
	EdgesFile    string `yaml:"edges_file"`
	FindingsFile string `yaml:"findings_file"`
}

// Report holds settings for flow report generation.
type Report struct {
	Workers        int    `yaml:"workers"`
	Color          string `yaml:"color"`
	Strategy       string `yaml:"strategy"`
	InformationURI string `yaml:"information_uri"`
}

// HTTPClient holds settings for the HTTP client used by the webhook publisher.
type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Publish lists optional destinations for generated reports.
type Publish struct {
	S3      S3Publish      `yaml:"s3"`
	Webhook WebhookPublish `yaml:"webhook"`
}

type S3Publish struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Prefix string `yaml:"prefix"`
}

type WebhookPublish struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// ValidateConfigPath checks that the path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %q: %w", configPath, err)
	}

	return nil
}

// LoadConfig reads the configuration from configPath and fills in defaults.
// A missing file at the default location is not an error; an explicitly
// requested file must exist.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	path := configPath
	if path == "" {
		path = DefaultConfigPath
	}

	if err := LoadYAML(path, cfg); err != nil {
		if !(configPath == "" && os.IsNotExist(err)) {
			return nil, err
		}
	}

	ApplyDefaults(cfg)
	return cfg, nil
}
