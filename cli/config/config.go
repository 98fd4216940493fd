// Package config handles CLI configuration loading and API key resolution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/runware/cli/keystore"
	"github.com/petal-labs/runware/container"
	"github.com/petal-labs/runware/core"
	"github.com/petal-labs/runware/runware"
)

// Environment variables read by the CLI.
const (
	EnvAPIKey  = runware.DefaultAPIKeyEnvVar
	EnvBaseURL = "RUNWARE_BASE_URL"
)

// DefaultAPIKeyRef is the keystore entry used when api_key_ref is not set.
const DefaultAPIKeyRef = "runware"

// ErrNoAPIKey is returned when no source provides an API key.
var ErrNoAPIKey = errors.New("no Runware API key configured")

// Config represents the CLI configuration.
type Config struct {
	Runware  RunwareConfig `yaml:"runware"`
	Defaults Defaults      `yaml:"defaults,omitempty"`
}

// RunwareConfig holds the API connection settings.
type RunwareConfig struct {
	APIKey    string `yaml:"api_key,omitempty"`
	APIKeyRef string `yaml:"api_key_ref,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// Defaults are applied to image commands when the matching flag is not given.
type Defaults struct {
	Model        string `yaml:"model,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	Height       int    `yaml:"height,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.runware/config.yaml
// - Windows: %USERPROFILE%\.runware\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".runware", "config.yaml")
}

// LoadConfig loads configuration from the specified path and applies
// environment overrides. If the file doesn't exist, the result holds only the
// overrides. Returns an error only if the file exists but cannot be read or
// parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Missing config file is not an error
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Runware.BaseURL = v
	}
}

// Save writes the configuration as yaml, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding the existing environment. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// KeyRef returns the keystore entry name for the API key.
func (c *Config) KeyRef() string {
	if c.Runware.APIKeyRef != "" {
		return c.Runware.APIKeyRef
	}
	return DefaultAPIKeyRef
}

// ResolveAPIKey picks the API key from, in order: flagValue, the
// RUNWARE_API_KEY variable, runware.api_key, and the keystore entry named by
// KeyRef. ks may be nil to skip the keystore.
func (c *Config) ResolveAPIKey(flagValue string, ks keystore.Keystore) (core.Secret, error) {
	if flagValue != "" {
		return core.NewSecret(flagValue), nil
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		return core.NewSecret(v), nil
	}
	if c.Runware.APIKey != "" {
		return core.NewSecret(c.Runware.APIKey), nil
	}

	if ks != nil {
		v, err := ks.Get(c.KeyRef())
		var notFound *keystore.ErrKeyNotFound
		switch {
		case err == nil && v != "":
			return core.NewSecret(v), nil
		case err != nil && !errors.As(err, &notFound):
			return core.Secret{}, fmt.Errorf("read keystore: %w", err)
		}
	}

	return core.Secret{}, fmt.Errorf("%w: use --api-key, set %s or run 'runware keys set %s'", ErrNoAPIKey, EnvAPIKey, c.KeyRef())
}

// ContainerConfig builds the binding container configuration.
func (c *Config) ContainerConfig(apiKey core.Secret) container.Config {
	return container.Config{
		APIKey:  apiKey.Expose(),
		BaseURL: c.Runware.BaseURL,
	}
}
