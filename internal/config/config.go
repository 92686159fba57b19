// Package config loads service configuration from defaults, an optional
// YAML/JSON/TOML file and RESUME_ANALYZER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_ANALYZER_SERVER_ADDR.
const EnvPrefix = "RESUME_ANALYZER"

// Ontology sources.
const (
	OntologyEmbedded = "embedded"
	OntologyFile     = "file"
	OntologyPostgres = "postgres"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig     `mapstructure:"server"`
	Log      LogConfig        `mapstructure:"log"`
	Ontology OntologyConfig   `mapstructure:"ontology"`
	Database DatabaseConfig   `mapstructure:"database"`
	Fetch    FetchConfig      `mapstructure:"fetch"`
	S3       storage.S3Config `mapstructure:"s3"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Analysis AnalysisConfig   `mapstructure:"analysis"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
	RateLimit       float64       `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst       int           `mapstructure:"rate_burst" validate:"gte=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// OntologyConfig selects where the skill ontology is loaded from.
type OntologyConfig struct {
	Source string `mapstructure:"source" validate:"oneof=embedded file postgres"`
	Path   string `mapstructure:"path" validate:"required_if=Source file"`
}

// DatabaseConfig configures PostgreSQL. An empty URL disables persistence.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	EnsureSchema bool   `mapstructure:"ensure_schema"`
}

// FetchConfig configures job description fetching.
type FetchConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	UseBrowser     bool          `mapstructure:"use_browser"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	BrowserTimeout time.Duration `mapstructure:"browser_timeout" validate:"gt=0"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	UserAgent      string        `mapstructure:"user_agent" validate:"required"`
}

// QueueConfig configures the AMQP worker.
type QueueConfig struct {
	URL      string `mapstructure:"url"`
	Name     string `mapstructure:"name" validate:"required"`
	Workers  int    `mapstructure:"workers" validate:"min=1,max=64"`
	Prefetch int    `mapstructure:"prefetch" validate:"min=1"`
}

// AnalysisConfig bounds a single analysis.
type AnalysisConfig struct {
	DecodeTimeout time.Duration `mapstructure:"decode_timeout" validate:"gt=0"`
	MaxTextChars  int           `mapstructure:"max_text_chars" validate:"gt=0"`
}

// New returns a viper instance with defaults and environment overrides registered.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("ontology.source", OntologyEmbedded)
	v.SetDefault("ontology.path", "")

	v.SetDefault("database.url", "")
	v.SetDefault("database.ensure_schema", true)

	v.SetDefault("fetch.enabled", true)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.browser_timeout", 30*time.Second)
	v.SetDefault("fetch.cache_ttl", 24*time.Hour)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; ResumeAnalyzer/0.1)")

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("queue.url", "")
	v.SetDefault("queue.name", "resume_analysis")
	v.SetDefault("queue.workers", 3)
	v.SetDefault("queue.prefetch", 1)

	v.SetDefault("analysis.decode_timeout", 20*time.Second)
	v.SetDefault("analysis.max_text_chars", 50_000)
}

// Load reads configFile when non-empty, then unmarshals and validates v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// Validate checks field constraints and cross-section requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", configKey(fe.Namespace()), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.Ontology.Source == OntologyPostgres && c.Database.URL == "" {
		return fmt.Errorf("config error: ontology.source %q requires database.url", OntologyPostgres)
	}
	return nil
}

// configKey turns a validator namespace such as "Config.server.addr" into "server.addr".
func configKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
