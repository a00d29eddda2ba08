package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds agegate configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Restriction RestrictionConfig `yaml:"restriction"`
	Overrides   OverridesConfig   `yaml:"overrides"`
	Topics      TopicsConfig      `yaml:"topics"`
}

type ServerConfig struct {
	Addr                string        `yaml:"addr"`                   // HTTP listen address, e.g. ":8080"
	MaxBodyBytes        int64         `yaml:"max_body_bytes"`         // request body cap for POST endpoints
	MaxInFlightRequests int           `yaml:"max_in_flight_requests"` // 0 disables the cap
	RateLimitRPS        float64       `yaml:"rate_limit_rps"`         // 0 disables limiting
	RateLimitBurst      int           `yaml:"rate_limit_burst"`       // token bucket size
	ReadHeaderTimeout   time.Duration `yaml:"read_header_timeout"`
	ReadTimeout         time.Duration `yaml:"read_timeout"`
	WriteTimeout        time.Duration `yaml:"write_timeout"`
	IdleTimeout         time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace | debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http
	Service  string `yaml:"service"`
}

// PatternConfig mirrors a lexical restriction pattern.
type PatternConfig struct {
	Terms  []string `yaml:"terms"`
	Except []string `yaml:"except"`
}

type RestrictionConfig struct {
	// Patterns are appended to the built-in set unless DisableBuiltinPatterns is set.
	Patterns                []PatternConfig `yaml:"patterns"`
	DisableBuiltinPatterns  bool            `yaml:"disable_builtin_patterns"`
	ProfanityWords          []string        `yaml:"profanity_words"`
	ProfanityFile           string          `yaml:"profanity_file"`
	DisableBuiltinProfanity bool            `yaml:"disable_builtin_profanity"`
}

type OverridesConfig struct {
	Channels       []string `yaml:"channels"`
	Videos         []string `yaml:"videos"`
	Playlists      []string `yaml:"playlists"`
	DisableBuiltin bool     `yaml:"disable_builtin"`
}

type TopicsConfig struct {
	Count int `yaml:"count"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. If the file doesn't exist, it returns the default config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 8 << 20
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimitBurst == 0 && cfg.Server.RateLimitRPS > 0 {
		cfg.Server.RateLimitBurst = int(cfg.Server.RateLimitRPS) + 1
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
	if cfg.Telemetry.Service == "" {
		cfg.Telemetry.Service = "agegate"
	}

	if cfg.Topics.Count == 0 {
		cfg.Topics.Count = 10
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("AGEGATE_ADDR", cfg.Server.Addr)
	cfg.Logging.Level = getEnv("AGEGATE_LOG_LEVEL", cfg.Logging.Level)
	if ep := getEnv("AGEGATE_OTEL_ENDPOINT", ""); ep != "" {
		cfg.Telemetry.Endpoint = ep
		cfg.Telemetry.Enabled = true
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
