package sessions

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var _ ports.AuthStateBus = (*Bus)(nil)

// Bus delivers auth-state changes to subscribers in the same process.
// Listeners run synchronously on the publishing goroutine, in subscription
// order, and must not publish to the same session.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
}

type subscription struct {
	id uint64
	fn ports.AuthStateListener
}

// NewBus creates a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Publish calls every listener of sessionID with a copy of u.
func (b *Bus) Publish(_ context.Context, sessionID string, u *user.User) error {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[sessionID]...)
	b.mu.Unlock()

	for _, s := range subs {
		var cp *user.User
		if u != nil {
			v := *u
			cp = &v
		}
		s.fn(cp)
	}
	return nil
}

// Subscribe registers fn for sessionID.
func (b *Bus) Subscribe(_ context.Context, sessionID string, fn ports.AuthStateListener) (func(), error) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[sessionID] = append(b.subs[sessionID], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sessionID, id) })
	}, nil
}

// Subscribers returns the number of listeners of sessionID.
func (b *Bus) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sessionID])
}

func (b *Bus) remove(sessionID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[sessionID]
	for i, s := range subs {
		if s.id == id {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(b.subs, sessionID)
		return
	}
	b.subs[sessionID] = subs
}
