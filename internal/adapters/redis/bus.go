package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var _ ports.AuthStateBus = (*AuthStateBus)(nil)

// authMessage is the payload published on a session's auth channel. A nil
// User announces sign-out.
type authMessage struct {
	User *authUser `json:"user"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthStateBus implements ports.AuthStateBus with redis pub/sub. Each
// session has its own channel; a single pattern subscription per instance
// receives every channel and dispatches to local listeners.
type AuthStateBus struct {
	client goredis.UniversalClient
	logger *slog.Logger

	mu     sync.Mutex
	pubsub *goredis.PubSub
	done   chan struct{}
	nextID uint64
	subs   map[string]map[uint64]ports.AuthStateListener
}

// NewAuthStateBus creates a bus on client. The pattern subscription opens
// with the first Subscribe.
func NewAuthStateBus(client goredis.UniversalClient, logger *slog.Logger) *AuthStateBus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthStateBus{
		client: client,
		logger: logger,
		subs:   make(map[string]map[uint64]ports.AuthStateListener),
	}
}

// Publish announces u on the session's channel.
func (b *AuthStateBus) Publish(ctx context.Context, sessionID string, u *user.User) error {
	var msg authMessage
	if u != nil {
		msg.User = &authUser{ID: u.ID, Email: u.Email}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding auth state: %w", err)
	}
	if err := b.client.Publish(ctx, authPrefix+sessionID, data).Err(); err != nil {
		return fmt.Errorf("publishing auth state: %w", err)
	}
	return nil
}

// Subscribe registers fn for sessionID. Messages are delivered on the bus's
// receive goroutine, one at a time.
func (b *AuthStateBus) Subscribe(ctx context.Context, sessionID string, fn ports.AuthStateListener) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pubsub == nil {
		if err := b.startLocked(ctx); err != nil {
			return nil, err
		}
	}

	b.nextID++
	id := b.nextID
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[uint64]ports.AuthStateListener)
	}
	b.subs[sessionID][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sessionID, id) })
	}, nil
}

// Close ends the pattern subscription and waits for the receive loop.
func (b *AuthStateBus) Close() error {
	b.mu.Lock()
	ps, done := b.pubsub, b.done
	b.pubsub, b.done = nil, nil
	b.mu.Unlock()

	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}

func (b *AuthStateBus) startLocked(ctx context.Context) error {
	ps := b.client.PSubscribe(context.WithoutCancel(ctx), authPrefix+"*")
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("subscribing to auth state: %w", err)
	}

	b.pubsub = ps
	b.done = make(chan struct{})
	go b.receive(ps.Channel(), b.done)
	return nil
}

func (b *AuthStateBus) receive(ch <-chan *goredis.Message, done chan struct{}) {
	defer close(done)

	for msg := range ch {
		sessionID := strings.TrimPrefix(msg.Channel, authPrefix)

		var am authMessage
		if err := json.Unmarshal([]byte(msg.Payload), &am); err != nil {
			b.logger.Warn("dropping malformed auth state message",
				slog.String("operation", "AuthStateBus.receive"),
				slog.Any("error", err),
			)
			continue
		}

		for _, fn := range b.listeners(sessionID) {
			var u *user.User
			if am.User != nil {
				u = &user.User{ID: am.User.ID, Email: am.User.Email}
			}
			fn(u)
		}
	}
}

func (b *AuthStateBus) listeners(sessionID string) []ports.AuthStateListener {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ports.AuthStateListener, 0, len(b.subs[sessionID]))
	for _, fn := range b.subs[sessionID] {
		out = append(out, fn)
	}
	return out
}

func (b *AuthStateBus) remove(sessionID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs[sessionID], id)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
}
