// Package config loads dlmeta settings from dlmeta.yaml and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, environment
// variables (a .env file is honoured by the CLI), command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the file looked up in a directory.
const ConfigFileName = "dlmeta.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvDatabaseURL = "DLMETA_DATABASE_URL"
	EnvSchemaDir   = "DLMETA_SCHEMAS_DIR"
	EnvTarget      = "DLMETA_TARGET"
)

// SchemasConfig selects where schemas are loaded from. At most one source
// may be set; with neither, the embedded schema set is used.
type SchemasConfig struct {
	Dir         string `yaml:"dir,omitempty" validate:"omitempty,dir,excluded_with=DatabaseURL"`
	DatabaseURL string `yaml:"database_url,omitempty" validate:"omitempty,url"`
	// Table names the schema table in the database; empty uses the store default.
	Table string `yaml:"table,omitempty" validate:"omitempty,max=63"`
}

// ConnectConfig controls connection establishment to the schema store.
type ConnectConfig struct {
	Attempts int           `yaml:"attempts" validate:"gte=-1,lte=100"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Config is the complete dlmeta configuration.
type Config struct {
	Schemas SchemasConfig `yaml:"schemas"`
	Connect ConnectConfig `yaml:"connect"`
	// Target is the default range for `dlmeta migrate`.
	Target string `yaml:"target,omitempty" validate:"omitempty,version_range"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Connect: ConnectConfig{
			Attempts: 5,
			Timeout:  10 * time.Second,
		},
	}
}

// Load reads the config file at path. If path is a directory, ConfigFileName
// inside it is read. Relative schema directories are resolved against the
// directory holding the file. The result is validated.
func Load(path string) (*Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dlmeta.ErrInvalidConfig, path, err)
	}
	if cfg.Schemas.Dir != "" && !filepath.IsAbs(cfg.Schemas.Dir) {
		cfg.Schemas.Dir = filepath.Join(filepath.Dir(path), cfg.Schemas.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides fields from environment variables found by lookup
// (typically os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSchemaDir); ok && v != "" {
		c.UseSchemaDir(v)
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.UseDatabase(v)
	}
	if v, ok := lookup(EnvTarget); ok && v != "" {
		c.Target = v
	}
}

// UseSchemaDir selects a schema directory, replacing any database source.
func (c *Config) UseSchemaDir(dir string) {
	c.Schemas.Dir = dir
	c.Schemas.DatabaseURL = ""
}

// UseDatabase selects the PostgreSQL schema store, replacing any directory source.
func (c *Config) UseDatabase(url string) {
	c.Schemas.DatabaseURL = url
	c.Schemas.Dir = ""
}

// Validate checks the configuration. Failures wrap dlmeta.ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", dlmeta.ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", dlmeta.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "dir":
		return fmt.Sprintf("%s: %q is not a directory", field, fe.Value())
	case "url":
		return fmt.Sprintf("%s: %q is not a URL", field, fe.Value())
	case "excluded_with":
		return fmt.Sprintf("%s: cannot be combined with schemas.database_url", field)
	case "version_range":
		return fmt.Sprintf("%s: %q is not a version range", field, fe.Value())
	default:
		return fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param())
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("version_range", func(fl validator.FieldLevel) bool {
		_, err := version.ParseSpec(fl.Field().String())
		return err == nil
	})
	return v
}
