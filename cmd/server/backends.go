package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/todolists/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/todolists/internal/adapters/clients/memory"
	"github.com/jsamuelsen11/todolists/internal/adapters/redis"
	"github.com/jsamuelsen11/todolists/internal/adapters/sessions"
	"github.com/jsamuelsen11/todolists/internal/platform/config"
	"github.com/jsamuelsen11/todolists/internal/platform/httpclient"
	"github.com/jsamuelsen11/todolists/internal/platform/scheduler"
	"github.com/jsamuelsen11/todolists/internal/platform/telemetry"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// backend is the selected backend-as-a-service: hosted Firebase or the
// in-memory emulator.
type backend struct {
	auth     ports.AuthClient
	store    ports.DocumentStore
	checkers []ports.HealthChecker
}

func newBackend(cfg *config.Config, metrics *telemetry.Metrics, logger *slog.Logger) (*backend, error) {
	switch cfg.Backend.Kind {
	case config.BackendMemory:
		b, err := memory.New(memory.Options{
			Secret:   []byte(cfg.Backend.EmulatorSecret),
			TokenTTL: cfg.Session.TTL,
		})
		if err != nil {
			return nil, err
		}
		logger.Warn("using in-memory backend; data is lost on restart")
		return &backend{auth: b, store: b, checkers: []ports.HealthChecker{b}}, nil

	case config.BackendFirebase:
		accounts := httpclient.New(&cfg.Client, "firebase-auth", cfg.Backend.AuthURL, metrics, logger)
		tokens := httpclient.New(&cfg.Client, "securetoken", cfg.Backend.TokenURL, metrics, logger)
		docs := httpclient.New(&cfg.Client, "firestore", cfg.Backend.FirestoreURL, metrics, logger)

		auth := acl.NewAuthClient(accounts, tokens, cfg.Backend.APIKey, logger)
		store := acl.NewFirestoreClient(docs, cfg.Backend.ProjectID, cfg.Backend.APIKey, logger)
		return &backend{auth: auth, store: store, checkers: []ports.HealthChecker{auth, store}}, nil

	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}

// sessionBackend is the selected session store and auth-state bus.
type sessionBackend struct {
	store   ports.SessionStore
	bus     ports.AuthStateBus
	checker ports.HealthChecker
	// purger is nil when the store expires entries itself.
	purger scheduler.Purger
	close  func() error
}

func newSessionBackend(cfg *config.Config, logger *slog.Logger) *sessionBackend {
	if cfg.Session.Store == config.SessionStoreRedis {
		client := redis.NewClient(&cfg.Redis)
		store := redis.NewSessionStore(client)
		bus := redis.NewAuthStateBus(client, logger)
		return &sessionBackend{
			store:   store,
			bus:     bus,
			checker: store,
			close: func() error {
				return errors.Join(bus.Close(), client.Close())
			},
		}
	}

	store := sessions.NewStore()
	return &sessionBackend{
		store:   store,
		bus:     sessions.NewBus(),
		checker: store,
		purger:  store,
		close:   func() error { return nil },
	}
}

// Close releases the store's connections.
func (s *sessionBackend) Close() error {
	return s.close()
}
