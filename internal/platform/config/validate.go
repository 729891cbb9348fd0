package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Client.validate(),
		c.Telemetry.validate(),
		c.Backend.validate(),
		c.Session.validate(),
		c.Redis.validate(c.Session.Store),
		c.View.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("client.rate_limit.requests_per_second must not be negative"))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (b *BackendConfig) validate() error {
	var errs []error

	switch b.Kind {
	case BackendMemory:
		if b.EmulatorSecret == "" {
			errs = append(errs, errors.New("backend.emulator_secret must not be empty when kind is memory"))
		}
	case BackendFirebase:
		if b.APIKey == "" {
			errs = append(errs, errors.New("backend.api_key must not be empty when kind is firebase"))
		}
		if b.ProjectID == "" {
			errs = append(errs, errors.New("backend.project_id must not be empty when kind is firebase"))
		}
		for name, raw := range map[string]string{
			"backend.auth_url":      b.AuthURL,
			"backend.token_url":     b.TokenURL,
			"backend.firestore_url": b.FirestoreURL,
		} {
			if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("backend.kind must be one of: memory, firebase; got %q", b.Kind))
	}

	return errors.Join(errs...)
}

func (s *SessionConfig) validate() error {
	var errs []error

	switch s.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("session.store must be one of: memory, redis; got %q", s.Store))
	}
	if s.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name must not be empty"))
	}
	if s.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if s.IdleTimeout <= 0 {
		errs = append(errs, errors.New("session.idle_timeout must be positive"))
	}
	if s.SweepInterval <= 0 {
		errs = append(errs, errors.New("session.sweep_interval must be positive"))
	}

	return errors.Join(errs...)
}

func (r *RedisConfig) validate(store string) error {
	if store != SessionStoreRedis {
		return nil
	}
	if r.Addr == "" {
		return errors.New("redis.addr must not be empty when session.store is redis")
	}
	if r.DB < 0 {
		return fmt.Errorf("redis.db must not be negative, got %d", r.DB)
	}
	return nil
}

func (v *ViewConfig) validate() error {
	var errs []error

	switch v.RefreshPolicy {
	case "full", "patch":
	default:
		errs = append(errs, fmt.Errorf("view.refresh_policy must be one of: full, patch; got %q", v.RefreshPolicy))
	}
	if v.FetchConcurrency < 1 {
		errs = append(errs, fmt.Errorf("view.fetch_concurrency must be >= 1, got %d", v.FetchConcurrency))
	}
	if v.CallbackTimeout <= 0 {
		errs = append(errs, errors.New("view.callback_timeout must be positive"))
	}

	return errors.Join(errs...)
}
