package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultFetchConcurrency = 4
)

// defaults returns the values loaded beneath base.yaml. Every key here is
// also addressable as an APP_ env var even when no YAML file mentions it.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.request_timeout":  "15s",
		"server.shutdown_timeout": "20s",

		"log.level":  "info",
		"log.format": "json",

		"client.timeout":                         "10s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "2s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           0,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todolists",

		"backend.kind":            BackendMemory,
		"backend.api_key":         "",
		"backend.project_id":      "",
		"backend.auth_url":        "https://identitytoolkit.googleapis.com/v1",
		"backend.token_url":       "https://securetoken.googleapis.com/v1",
		"backend.firestore_url":   "https://firestore.googleapis.com/v1",
		"backend.emulator_secret": "",

		"session.store":          SessionStoreMemory,
		"session.cookie_name":    "todolists_session",
		"session.cookie_secure":  false,
		"session.ttl":            "168h",
		"session.idle_timeout":   "30m",
		"session.sweep_interval": "1m",

		"redis.addr":     "localhost:6379",
		"redis.password": "",
		"redis.db":       0,

		"view.refresh_policy":    "full",
		"view.fetch_concurrency": defaultFetchConcurrency,
		"view.callback_timeout":  "10s",
		"view.atomic_move":       true,
	}
}
