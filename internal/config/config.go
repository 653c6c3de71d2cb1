// Package config loads relterm CLI configuration from YAML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Corpus CorpusConfig `yaml:"corpus"`
	Run    RunConfig    `yaml:"run"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects the blob store that holds corpora and outputs.
type StoreConfig struct {
	Kind      string `yaml:"kind"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	// LedgerTable names a DynamoDB table recording committed partitions.
	LedgerTable string `yaml:"ledger_table"`
}

// CorpusConfig locates the corpus files within the store.
type CorpusConfig struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// IOLimit caps corpus reads in bytes per second. Zero is unlimited.
	IOLimit int64 `yaml:"io_limit"`
}

// RunConfig holds the engine settings of a run.
type RunConfig struct {
	Policy     string `yaml:"policy"`
	Workers    int    `yaml:"workers"`
	Partitions int    `yaml:"partitions"`
	TopK       int    `yaml:"top_k"`
	Radius     int    `yaml:"radius"`
	Normalize  bool   `yaml:"normalize"`
	MaxRank    int    `yaml:"max_rank"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Kind:   "local",
			Secure: true,
		},
		Corpus: CorpusConfig{
			Root: ".",
		},
		Run: RunConfig{
			Policy:     "distance",
			Workers:    2,
			Partitions: 2,
			TopK:       10,
			Radius:     2,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path and the
// RELTERM_* environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("RELTERM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RELTERM_STORE"); v != "" {
		cfg.Store.Kind = v
	}
	if v := os.Getenv("RELTERM_BUCKET"); v != "" {
		cfg.Store.Bucket = v
	}
	if v := os.Getenv("RELTERM_ENDPOINT"); v != "" {
		cfg.Store.Endpoint = v
	}
	if v := os.Getenv("RELTERM_ACCESS_KEY"); v != "" {
		cfg.Store.AccessKey = v
	}
	if v := os.Getenv("RELTERM_SECRET_KEY"); v != "" {
		cfg.Store.SecretKey = v
	}
	if v := os.Getenv("RELTERM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Workers = n
		}
	}
	if v := os.Getenv("RELTERM_IO_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Corpus.IOLimit = n
		}
	}
}

// Validate checks the configuration for values no command can run with.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	switch c.Store.Kind {
	case "local":
	case "s3":
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("store.bucket: required for s3"))
		}
	case "minio":
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("store.bucket: required for minio"))
		}
		if c.Store.Endpoint == "" {
			errs = append(errs, errors.New("store.endpoint: required for minio"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.kind: unknown store %q", c.Store.Kind))
	}

	if c.Corpus.IOLimit < 0 {
		errs = append(errs, errors.New("corpus.io_limit: must not be negative"))
	}
	if c.Run.Workers <= 0 {
		errs = append(errs, errors.New("run.workers: must be positive"))
	}
	if c.Run.Partitions <= 0 {
		errs = append(errs, errors.New("run.partitions: must be positive"))
	}
	if c.Run.TopK <= 0 {
		errs = append(errs, errors.New("run.top_k: must be positive"))
	}
	if c.Run.Radius <= 0 {
		errs = append(errs, errors.New("run.radius: must be positive"))
	}
	if c.Run.MaxRank < 0 {
		errs = append(errs, errors.New("run.max_rank: must not be negative"))
	}

	return errors.Join(errs...)
}
