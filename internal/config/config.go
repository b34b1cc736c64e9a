package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML unmarshaling from strings like "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level textuml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	NLP    NLPConfig    `yaml:"nlp"`
	Log    LogConfig    `yaml:"log"`
	Batch  BatchConfig  `yaml:"batch"`
}

type ServerConfig struct {
	Port            int      `yaml:"port" validate:"min=1,max=65535"`
	CORSOrigin      string   `yaml:"cors_origin"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes" validate:"gt=0"`
}

// Annotation backends.
const (
	BackendNone    = "none"
	BackendHTTP    = "http"
	BackendCommand = "command"
)

// NLPConfig selects the optional dependency-parse backend used by class detection.
type NLPConfig struct {
	Backend  string   `yaml:"backend" validate:"oneof=none http command"`
	Endpoint string   `yaml:"endpoint" validate:"required_if=Backend http"`
	Command  string   `yaml:"command" validate:"required_if=Backend command"`
	Args     []string `yaml:"args"`
	Timeout  Duration `yaml:"timeout"`
}

// Log output encodings.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=text json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

type BatchConfig struct {
	Workers int `yaml:"workers" validate:"min=1,max=64"`
}

const (
	defaultPort            = 5000
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultMaxBodyBytes    = 1 << 20
	defaultNLPTimeout      = 5 * time.Second
	defaultMaxSizeMB       = 50
	defaultMaxBackups      = 3
	defaultMaxAgeDays      = 28
	defaultWorkers         = 4
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads, expands env vars, parses, and validates a textuml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse expands env vars in data, decodes it, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.CORSOrigin == "" {
		cfg.Server.CORSOrigin = "*"
	}
	if cfg.Server.ReadTimeout.Duration == 0 {
		cfg.Server.ReadTimeout.Duration = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout.Duration == 0 {
		cfg.Server.WriteTimeout.Duration = defaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout.Duration == 0 {
		cfg.Server.ShutdownTimeout.Duration = defaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = defaultMaxBodyBytes
	}

	if cfg.NLP.Backend == "" {
		cfg.NLP.Backend = BackendNone
	}
	if cfg.NLP.Timeout.Duration == 0 {
		cfg.NLP.Timeout.Duration = defaultNLPTimeout
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = LogFormatText
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaultMaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = defaultMaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = defaultMaxAgeDays
	}

	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = defaultWorkers
	}
}

// Validate checks field rules and reports every violation at once.
func (cfg *Config) Validate() error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			errs = append(errs, fieldError(e))
		}
	}

	durations := []struct {
		name string
		d    Duration
	}{
		{"server.read_timeout", cfg.Server.ReadTimeout},
		{"server.write_timeout", cfg.Server.WriteTimeout},
		{"server.shutdown_timeout", cfg.Server.ShutdownTimeout},
		{"nlp.timeout", cfg.NLP.Timeout},
	}
	for _, d := range durations {
		if d.d.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", d.name))
		}
	}

	return errors.Join(errs...)
}

// fieldError renders a validator failure using the YAML path of the field.
func fieldError(e validator.FieldError) error {
	_, field, _ := strings.Cut(e.Namespace(), ".")
	switch e.Tag() {
	case "required_if":
		return fmt.Errorf("%s is required when %s", field, requiredIfCondition(e.Param()))
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", field, e.Param(), e.Value())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s", field, e.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", field, e.Param())
	default:
		return fmt.Errorf("%s failed %q validation", field, e.Tag())
	}
}

// requiredIfCondition turns "Backend http" into "backend is http".
func requiredIfCondition(param string) string {
	name, value, _ := strings.Cut(param, " ")
	return fmt.Sprintf("%s is %s", strings.ToLower(name), value)
}
