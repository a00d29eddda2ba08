package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := validateServerConfig(cfg.Server); err != nil {
		return err
	}

	if err := validateLoggingConfig(cfg.Logging); err != nil {
		return err
	}

	if err := validateTelemetryConfig(cfg.Telemetry); err != nil {
		return err
	}

	if err := validateRestrictionConfig(cfg.Restriction); err != nil {
		return err
	}

	if cfg.Topics.Count < 0 {
		return fmt.Errorf("topics.count must not be negative, got %d", cfg.Topics.Count)
	}

	return nil
}

func validateServerConfig(s ServerConfig) error {
	addr := strings.TrimSpace(s.Addr)
	if addr == "" {
		return errors.New("server.addr must be set")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("server.addr %q is not host:port: %w", s.Addr, err)
	}
	if s.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must not be negative")
	}
	if s.MaxInFlightRequests < 0 {
		return errors.New("server.max_in_flight_requests must not be negative")
	}
	if s.ReadHeaderTimeout < 0 || s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.IdleTimeout < 0 || s.ShutdownTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if s.RateLimitRPS < 0 {
		return errors.New("server.rate_limit_rps must not be negative")
	}
	if s.RateLimitRPS > 0 && s.RateLimitBurst <= 0 {
		return errors.New("server.rate_limit_burst must be positive when rate limiting is enabled")
	}
	return nil
}

func validateLoggingConfig(l LoggingConfig) error {
	if !logLevels[strings.ToLower(strings.TrimSpace(l.Level))] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", l.Format)
	}
	return nil
}

func validateTelemetryConfig(t TelemetryConfig) error {
	if !t.Enabled {
		return nil
	}
	if strings.TrimSpace(t.Endpoint) == "" {
		return errors.New("telemetry enabled but endpoint is empty")
	}
	if t.Protocol != "" {
		switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
		case "grpc", "http":
		default:
			return fmt.Errorf("telemetry.protocol must be grpc or http, got %q", t.Protocol)
		}
	}
	return nil
}

func validateRestrictionConfig(r RestrictionConfig) error {
	if r.DisableBuiltinPatterns && len(r.Patterns) == 0 {
		return errors.New("restriction.patterns must not be empty when disable_builtin_patterns is set")
	}
	for i, p := range r.Patterns {
		terms := 0
		for _, t := range p.Terms {
			if strings.TrimSpace(t) != "" {
				terms++
			}
		}
		if terms == 0 {
			return fmt.Errorf("restriction.patterns[%d] has no terms", i)
		}
	}

	if r.ProfanityFile != "" {
		st, err := os.Stat(r.ProfanityFile)
		if err != nil {
			return fmt.Errorf("restriction.profanity_file: %w", err)
		}
		if st.IsDir() {
			return fmt.Errorf("restriction.profanity_file %q is a directory", r.ProfanityFile)
		}
	}
	if r.DisableBuiltinProfanity && len(r.ProfanityWords) == 0 && r.ProfanityFile == "" {
		return errors.New("restriction: no profanity lexicon configured (builtin disabled, no profanity_words or profanity_file)")
	}
	return nil
}
