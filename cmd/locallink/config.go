package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration unmarshals YAML strings like "15s" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds CLI configuration, loaded from a YAML file with
// environment variable overrides.
type Config struct {
	APIURL         string   `yaml:"api_url"`
	WSURL          string   `yaml:"ws_url"`
	StorageDir     string   `yaml:"storage_dir"`
	RedisURL       string   `yaml:"redis_url"`
	SentryDSN      string   `yaml:"sentry_dsn"`
	Environment    string   `yaml:"environment"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

func defaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8080",
		WSURL:          "ws://localhost:8080/ws",
		Environment:    "production",
		RequestTimeout: Duration(15 * time.Second),
	}
}

// defaultConfigPath returns ~/.config/locallink/config.yaml (or the
// platform equivalent).
func defaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "locallink", "config.yaml"), nil
}

// loadConfig reads the config file at path, falling back to
// $LOCALLINK_CONFIG and then the default location. A missing file
// yields the defaults; environment variables override file values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("LOCALLINK_CONFIG")
	}
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			path = ""
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, err
		}
	}

	for env, target := range map[string]*string{
		"LOCALLINK_API_URL":     &cfg.APIURL,
		"LOCALLINK_WS_URL":      &cfg.WSURL,
		"LOCALLINK_STORAGE_DIR": &cfg.StorageDir,
		"LOCALLINK_REDIS_URL":   &cfg.RedisURL,
		"LOCALLINK_SENTRY_DSN":  &cfg.SentryDSN,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}

	return cfg, nil
}
