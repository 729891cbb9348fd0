package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

var testNow = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func TestStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewStore()
	st.now = func() time.Time { return testNow }

	s := &user.Session{ID: "s1", User: user.User{ID: "u1", Email: "ada@example.com"}, IDToken: "id-1"}
	if err := st.Save(ctx, s, time.Hour); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s.IDToken = "mutated"
	got, err := st.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IDToken != "id-1" || got.User.Email != "ada@example.com" {
		t.Errorf("Get() = %+v, want stored copy", got)
	}

	if err := st.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := st.Get(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := st.Delete(ctx, "s1"); err != nil {
		t.Errorf("Delete() of missing session error = %v, want nil", err)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := testNow
	st := NewStore()
	st.now = func() time.Time { return now }

	_ = st.Save(ctx, &user.Session{ID: "short"}, time.Minute)
	_ = st.Save(ctx, &user.Session{ID: "long"}, time.Hour)

	now = testNow.Add(2 * time.Minute)
	if _, err := st.Get(ctx, "short"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(expired) error = %v, want ErrNotFound", err)
	}
	if _, err := st.Get(ctx, "long"); err != nil {
		t.Errorf("Get(live) error = %v", err)
	}

	_ = st.Save(ctx, &user.Session{ID: "stale"}, time.Second)
	if n := st.Purge(now.Add(time.Minute)); n != 1 {
		t.Errorf("Purge() = %d, want 1", n)
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := NewBus()

	var got []*user.User
	unsubscribe, err := b.Subscribe(ctx, "s1", func(u *user.User) { got = append(got, u) })
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	_, _ = b.Subscribe(ctx, "s2", func(*user.User) { t.Error("listener of another session called") })

	_ = b.Publish(ctx, "s1", &user.User{ID: "u1"})
	_ = b.Publish(ctx, "s1", nil)

	if len(got) != 2 || got[0] == nil || got[0].ID != "u1" || got[1] != nil {
		t.Fatalf("received = %v, want [u1 nil]", got)
	}

	unsubscribe()
	unsubscribe()
	if n := b.Subscribers("s1"); n != 0 {
		t.Errorf("Subscribers() = %d after unsubscribe, want 0", n)
	}

	_ = b.Publish(ctx, "s1", &user.User{ID: "u1"})
	if len(got) != 2 {
		t.Errorf("listener called after unsubscribe")
	}
}

func TestBus_UnsubscribeKeepsOthers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := NewBus()

	calls := map[string]int{}
	first, _ := b.Subscribe(ctx, "s1", func(*user.User) { calls["first"]++ })
	_, _ = b.Subscribe(ctx, "s1", func(*user.User) { calls["second"]++ })

	first()
	_ = b.Publish(ctx, "s1", nil)

	if calls["first"] != 0 || calls["second"] != 1 {
		t.Errorf("calls = %v, want only second", calls)
	}
}
