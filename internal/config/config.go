// Package config loads and validates generator configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/linkforge/linkforge/internal/metadata"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Deploy    DeployConfig    `mapstructure:"deploy"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GeneratorConfig controls where and how pages are written.
type GeneratorConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	OutputFile   string `mapstructure:"output_file"`
	MaxPageBytes int64  `mapstructure:"max_page_bytes"`
}

// ResolverConfig governs the single metadata fetch.
type ResolverConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
}

// DeployConfig controls the git publish step.
type DeployConfig struct {
	WorkDir       string `mapstructure:"work_dir"`
	CommitMessage string `mapstructure:"commit_message"`
}

// ServerConfig controls the local preview server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment. An empty path means defaults
// plus environment variables only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.output_dir", ".")
	v.SetDefault("generator.output_file", "index.html")
	v.SetDefault("generator.max_page_bytes", 1<<20)
	v.SetDefault("resolver.user_agent", metadata.DefaultUserAgent)
	v.SetDefault("resolver.timeout", "10s")
	v.SetDefault("resolver.max_body_bytes", metadata.DefaultMaxBodyBytes)
	v.SetDefault("deploy.work_dir", "")
	v.SetDefault("deploy.commit_message", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Generator.OutputDir == "" {
		return fmt.Errorf("generator.output_dir must be set")
	}
	if c.Generator.OutputFile == "" {
		return fmt.Errorf("generator.output_file must be set")
	}
	if c.Generator.MaxPageBytes <= 0 {
		return fmt.Errorf("generator.max_page_bytes must be > 0")
	}
	if c.Resolver.UserAgent == "" {
		return fmt.Errorf("resolver.user_agent must be set")
	}
	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver.timeout must be > 0")
	}
	if c.Resolver.MaxBodyBytes <= 0 {
		return fmt.Errorf("resolver.max_body_bytes must be > 0")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	return nil
}
