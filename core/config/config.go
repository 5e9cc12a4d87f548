// Package config loads mutadapt settings. Values come from, in increasing
// precedence: defaults, an optional TOML file, an optional .env file and the
// process environment (MUTADAPT_*). Command-line flags are applied on top by
// the caller.
package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInvalidConfig is returned for unreadable or out-of-range settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variable names.
const (
	EnvLogLevel     = "MUTADAPT_LOG_LEVEL"
	EnvSyntax       = "MUTADAPT_SYNTAX"
	EnvFormat       = "MUTADAPT_FORMAT"
	EnvOutputDir    = "MUTADAPT_OUTPUT_DIR"
	EnvFetchTimeout = "MUTADAPT_FETCH_TIMEOUT"
)

// Syntaxes and Formats list the accepted values for Syntax and Format.
var (
	Syntaxes = []string{"xml", "html"}
	Formats  = []string{"json", "yaml", "markdown", "pdf", "xml"}
)

// Config holds resolved settings.
type Config struct {
	LogLevel     string        `toml:"log_level"`
	Syntax       string        `toml:"syntax"`
	Format       string        `toml:"format"`
	OutputDir    string        `toml:"output_dir"`
	FetchTimeout time.Duration `toml:"fetch_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Syntax:       "xml",
		Format:       "json",
		FetchTimeout: 30 * time.Second,
	}
}

// Load resolves settings. configFile and envFile may be empty; a missing
// envFile is not an error, a missing configFile is.
func Load(configFile, envFile string) (Config, error) {
	cfg := Default()

	if configFile != "" {
		md, err := toml.DecodeFile(configFile, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(ErrInvalidConfig, "reading %s: %v", configFile, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown key %q in %s", undecoded[0].String(), configFile)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(ErrInvalidConfig, "reading %s: %v", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSyntax); v != "" {
		c.Syntax = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvFetchTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s: %v", EnvFetchTimeout, err)
		}
		c.FetchTimeout = d
	}
	return nil
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}
	if !contains(Syntaxes, c.Syntax) {
		return errors.Wrapf(ErrInvalidConfig, "syntax %q (want one of %v)", c.Syntax, Syntaxes)
	}
	if !contains(Formats, c.Format) {
		return errors.Wrapf(ErrInvalidConfig, "format %q (want one of %v)", c.Format, Formats)
	}
	if c.FetchTimeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative fetch timeout %s", c.FetchTimeout)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
