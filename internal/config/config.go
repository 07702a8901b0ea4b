// Package config loads skyclust configuration from defaults, an
// optional YAML file and SKYCLUST_* environment variables, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for all environment overrides, e.g.
// SKYCLUST_CATALOG_BASE_URL.
const envPrefix = "SKYCLUST"

// Config is the complete application configuration shared by the
// pipeline CLI and the clusterd service.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" envconfig:"CATALOG"`
	Region  RegionConfig  `yaml:"region" envconfig:"REGION"`
	Cluster ClusterConfig `yaml:"cluster" envconfig:"CLUSTER"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
}

// CatalogConfig points at the extragalactic catalog service.
type CatalogConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RateLimit float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Burst     int           `yaml:"burst" envconfig:"BURST"`
}

// RegionConfig is the default sky region to query: a cone around the
// Virgo Cluster unless overridden.
type RegionConfig struct {
	RA         string  `yaml:"ra" envconfig:"RA"`
	Dec        string  `yaml:"dec" envconfig:"DEC"`
	RadiusDeg  float64 `yaml:"radius_deg" envconfig:"RADIUS_DEG"`
	Equinox    string  `yaml:"equinox" envconfig:"EQUINOX"`
	Table      string  `yaml:"table" envconfig:"TABLE"`
	MaxResults int     `yaml:"max_results" envconfig:"MAX_RESULTS"`
}

// ClusterConfig carries the DBSCAN parameters. Eps is measured in the
// unit-sphere Cartesian embedding, not in degrees.
type ClusterConfig struct {
	Eps        float64 `yaml:"eps" envconfig:"EPS"`
	MinSamples int     `yaml:"min_samples" envconfig:"MIN_SAMPLES"`
}

// ReportConfig names the report artifacts.
type ReportConfig struct {
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	SummaryCSV   string `yaml:"summary_csv" envconfig:"SUMMARY_CSV"`
	Workbook     string `yaml:"workbook" envconfig:"WORKBOOK"`
	ScatterPNG   string `yaml:"scatter_png" envconfig:"SCATTER_PNG"`
	HistogramPNG string `yaml:"histogram_png" envconfig:"HISTOGRAM_PNG"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"` // console, file or both
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ServerConfig contains the clusterd HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in configuration: the Virgo Cluster cone
// search the original analysis ran, with the published DBSCAN
// parameters.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:   "https://ned.ipac.caltech.edu",
			Timeout:   30 * time.Second,
			RateLimit: 1,
			Burst:     1,
		},
		Region: RegionConfig{
			RA:         "12h30m00s",
			Dec:        "+12d00m00s",
			RadiusDeg:  10,
			Equinox:    "J2000",
			Table:      "galaxies",
			MaxResults: 2000,
		},
		Cluster: ClusterConfig{
			Eps:        0.02,
			MinSamples: 10,
		},
		Report: ReportConfig{
			OutputDir:    "reports",
			SummaryCSV:   "cluster_summary.csv",
			Workbook:     "clusters.xlsx",
			ScatterPNG:   "clusters_scatter.png",
			HistogramPNG: "redshift_histogram.png",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/skyclust.log",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration. A non-empty path names a YAML file
// layered over the defaults; environment variables take precedence
// over both. A missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL must not be empty")
	}
	if c.Region.RadiusDeg <= 0 {
		return fmt.Errorf("region radius must be positive, got %g", c.Region.RadiusDeg)
	}
	if c.Cluster.Eps <= 0 {
		return fmt.Errorf("cluster eps must be positive, got %g", c.Cluster.Eps)
	}
	if c.Cluster.MinSamples < 1 {
		return fmt.Errorf("cluster min samples must be at least 1, got %d", c.Cluster.MinSamples)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}
