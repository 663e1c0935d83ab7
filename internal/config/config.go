package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TRAILSHIFT_FORMAT.
const EnvPrefix = "TRAILSHIFT"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config validation failed")

// Config holds all trailshift configuration.
type Config struct {
	Path     string        `mapstructure:"path"      validate:"required"`
	Actor    string        `mapstructure:"actor"`
	Format   string        `mapstructure:"format"    validate:"required,oneof=table csv json"`
	Output   string        `mapstructure:"output"`
	Append   bool          `mapstructure:"append"`
	Debug    bool          `mapstructure:"debug"`
	LogLevel string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	Color    bool          `mapstructure:"color"`
	Source   SourceConfig  `mapstructure:"source"`
	AWS      AWSConfig     `mapstructure:"aws"`
	Webhook  WebhookConfig `mapstructure:"webhook"`
}

// SourceConfig holds log discovery settings.
type SourceConfig struct {
	Patterns []string `mapstructure:"patterns" validate:"dive,required"`
}

// AWSConfig holds settings for s3:// locations. Empty values defer to the
// SDK's default chain.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// WebhookConfig holds the optional report webhook.
type WebhookConfig struct {
	URL     string            `mapstructure:"url"     validate:"omitempty,url"`
	Timeout time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	Headers map[string]string `mapstructure:"headers"`
}

// SetDefaults registers every key with its default so env lookups and
// Unmarshal see it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", "")
	v.SetDefault("actor", "")
	v.SetDefault("format", "table")
	v.SetDefault("output", "")
	v.SetDefault("append", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("color", true)
	v.SetDefault("source.patterns", []string{"*.json", "*.json.gz"})
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", 10*time.Second)
	v.SetDefault("webhook.headers", map[string]string{})
}

// Load resolves configuration from defaults, an optional YAML file, the
// environment, and any flags already bound to v, then validates it.
// An empty file searches ./trailshift.yaml and $HOME/.config/trailshift/.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("trailshift")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/trailshift")
	}
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// EffectiveLogLevel is "debug" when Debug is set, else LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
