package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nightmarlin/addressbook"
)

// Store kinds.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config aggregates application configuration values.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Birthdays BirthdaysConfig `yaml:"birthdays"`
}

// StorageConfig selects where the address book is kept between sessions.
type StorageConfig struct {
	Kind   string `yaml:"kind"`   // file|sqlite|postgres
	Path   string `yaml:"path"`   // file and sqlite stores
	Format string `yaml:"format"` // json|yaml, file store only
	DSN    string `yaml:"dsn"`    // postgres store only
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type BirthdaysConfig struct {
	WindowDays int `yaml:"window_days"`
}

const (
	defaultStoreKind     = StoreFile
	defaultStorePath     = "addressbook.json"
	defaultLoggingLevel  = "warn"
	defaultLoggingFormat = "text"
)

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Kind: defaultStoreKind,
			Path: defaultStorePath,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Birthdays: BirthdaysConfig{WindowDays: addressbook.DefaultWindow},
	}
}

// Load applies, in order, the defaults, the YAML file at path and the
// environment. An empty path or a missing file skips the YAML step.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setFromEnv("ADDRESSBOOK_STORE", &c.Storage.Kind)
	setFromEnv("ADDRESSBOOK_DATA", &c.Storage.Path)
	setFromEnv("ADDRESSBOOK_FORMAT", &c.Storage.Format)
	setFromEnv("ADDRESSBOOK_DSN", &c.Storage.DSN)
	setFromEnv("ADDRESSBOOK_LOG_LEVEL", &c.Logging.Level)
	setFromEnv("ADDRESSBOOK_LOG_FORMAT", &c.Logging.Format)
	setFromEnv("ADDRESSBOOK_LOG_FILE", &c.Logging.File)

	if v := os.Getenv("ADDRESSBOOK_BIRTHDAY_WINDOW"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ADDRESSBOOK_BIRTHDAY_WINDOW value %q: %w", v, err)
		}
		c.Birthdays.WindowDays = days
	}
	return nil
}

func setFromEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.Storage.Kind {
	case StoreFile, StoreSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the %s store", c.Storage.Kind)
		}
	case StorePostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown storage kind %q", c.Storage.Kind)
	}

	switch c.Storage.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unknown storage format %q", c.Storage.Format)
	}

	if c.Birthdays.WindowDays < 0 {
		return fmt.Errorf("birthday window %d is negative", c.Birthdays.WindowDays)
	}
	return nil
}
