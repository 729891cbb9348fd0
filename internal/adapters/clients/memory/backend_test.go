package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var testNow = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(Options{Secret: []byte("test-secret"), BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b.now = func() time.Time { return testNow }
	return b
}

func signUp(t *testing.T, b *Backend, email string) (context.Context, *user.Session) {
	t.Helper()
	s, err := b.SignUp(context.Background(), user.Credentials{Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("SignUp(%s) error = %v", email, err)
	}
	return user.WithSession(context.Background(), s), s
}

func TestNew_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); err == nil {
		t.Fatal("New() without secret succeeded")
	}
}

func TestBackend_Auth(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	ctx := context.Background()

	s, err := b.SignUp(ctx, user.Credentials{Email: "Ada@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if s.User.Email != "ada@example.com" || s.User.ID == "" || s.IDToken == "" || s.RefreshToken == "" {
		t.Errorf("SignUp() = %+v", s)
	}
	if !s.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, want now+1h", s.ExpiresAt)
	}

	if _, err := b.SignUp(ctx, user.Credentials{Email: "ada@example.com", Password: "secret1"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate SignUp() error = %v, want ErrConflict", err)
	}
	if _, err := b.SignUp(ctx, user.Credentials{Email: "bob@example.com", Password: "123"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("weak password SignUp() error = %v, want ErrValidation", err)
	}

	in, err := b.SignIn(ctx, user.Credentials{Email: "ada@example.com", Password: "secret1"})
	if err != nil || in.User.ID != s.User.ID {
		t.Fatalf("SignIn() = %+v, %v", in, err)
	}
	if _, err := b.SignIn(ctx, user.Credentials{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("wrong password SignIn() error = %v, want ErrUnauthenticated", err)
	}
	if _, err := b.SignIn(ctx, user.Credentials{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("unknown SignIn() error = %v, want ErrUnauthenticated", err)
	}

	u, err := b.Lookup(ctx, in.IDToken)
	if err != nil || u.ID != s.User.ID || u.Email != "ada@example.com" {
		t.Errorf("Lookup() = %+v, %v", u, err)
	}
	if _, err := b.Lookup(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Lookup(garbage) error = %v, want ErrUnauthenticated", err)
	}
}

func TestBackend_TokenExpiryAndRefresh(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	_, s := signUp(t, b, "ada@example.com")

	b.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	if _, err := b.Lookup(context.Background(), s.IDToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Lookup(expired) error = %v, want ErrUnauthenticated", err)
	}

	fresh, err := b.Refresh(context.Background(), s.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := b.Lookup(context.Background(), fresh.IDToken); err != nil {
		t.Errorf("Lookup(refreshed) error = %v", err)
	}
	if _, err := b.Refresh(context.Background(), s.RefreshToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("reused refresh token error = %v, want ErrUnauthenticated", err)
	}
}

func TestBackend_SignOutRevokesRefresh(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	_, s := signUp(t, b, "ada@example.com")

	if err := b.SignOut(context.Background(), s.IDToken); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if _, err := b.Refresh(context.Background(), s.RefreshToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Refresh after SignOut error = %v, want ErrUnauthenticated", err)
	}
}

func TestBackend_Documents(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	ctx, s := signUp(t, b, "ada@example.com")
	lists := "users/" + s.User.ID + "/todoLists"

	empty, err := b.List(ctx, lists)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("List(empty) = %#v, %v, want empty non-nil", empty, err)
	}

	id1, err := b.Create(ctx, lists, ports.Fields{"name": "Home", "createdAt": testNow})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id2, err := b.Create(ctx, lists, ports.Fields{"name": "Work"})
	if err != nil {
		t.Fatal(err)
	}

	docs, err := b.List(ctx, lists)
	if err != nil || len(docs) != 2 || docs[0].ID != id1 || docs[1].ID != id2 {
		t.Fatalf("List() = %+v, %v, want creation order", docs, err)
	}
	if !docs[0].Fields.Time("createdAt").Equal(testNow) {
		t.Errorf("createdAt = %v", docs[0].Fields["createdAt"])
	}

	docs[0].Fields["name"] = "mutated"
	if again, _ := b.List(ctx, lists); again[0].Fields.String("name") != "Home" {
		t.Error("List() returned shared field maps")
	}

	if err := b.Update(ctx, lists, id1, ports.Fields{"name": "House"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	docs, _ = b.List(ctx, lists)
	if docs[0].Fields.String("name") != "House" || !docs[0].Fields.Time("createdAt").Equal(testNow) {
		t.Errorf("Update() did not merge: %+v", docs[0].Fields)
	}

	if err := b.Update(ctx, lists, "missing", ports.Fields{"name": "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
	if err := b.Delete(ctx, lists, id2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := b.Delete(ctx, lists, id2); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if _, err := b.Create(ctx, lists, ports.Fields{"n": 3}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Create(int field) error = %v, want ErrValidation", err)
	}
}

func TestBackend_AccessRules(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	_, ada := signUp(t, b, "ada@example.com")
	bobCtx, _ := signUp(t, b, "bob@example.com")
	adaLists := "users/" + ada.User.ID + "/todoLists"

	if _, err := b.List(context.Background(), adaLists); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("List without session error = %v, want ErrUnauthenticated", err)
	}
	if _, err := b.List(bobCtx, adaLists); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("List of another user's lists error = %v, want ErrForbidden", err)
	}
	if _, err := b.Create(bobCtx, "users/"+ada.User.ID, ports.Fields{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Create at user root error = %v, want ErrForbidden", err)
	}
}

func TestBackend_Commit(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	ctx, s := signUp(t, b, "ada@example.com")
	from := "users/" + s.User.ID + "/todoLists/L1/tasks"
	to := "users/" + s.User.ID + "/todoLists/L2/tasks"

	orig, err := b.Create(ctx, from, ports.Fields{"title": "Dishes", "priority": "low"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("failed precondition writes nothing", func(t *testing.T) {
		_, err := b.Commit(ctx, []ports.Write{
			{Op: ports.WriteCreate, Collection: to, Fields: ports.Fields{"title": "Dishes"}},
			{Op: ports.WriteDelete, Collection: from, ID: "missing"},
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Commit() error = %v, want ErrNotFound", err)
		}
		if docs, _ := b.List(ctx, to); len(docs) != 0 {
			t.Errorf("destination = %+v, want untouched", docs)
		}
	})

	t.Run("moves atomically", func(t *testing.T) {
		ids, err := b.Commit(ctx, []ports.Write{
			{Op: ports.WriteCreate, Collection: to, ID: "n1", Fields: ports.Fields{"title": "Dishes", "priority": "high"}},
			{Op: ports.WriteDelete, Collection: from, ID: orig},
		})
		if err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		if len(ids) != 2 || ids[0] != "n1" || ids[1] != orig {
			t.Errorf("Commit() ids = %v", ids)
		}
		src, _ := b.List(ctx, from)
		dst, _ := b.List(ctx, to)
		if len(src) != 0 || len(dst) != 1 || dst[0].Fields.String("priority") != "high" {
			t.Errorf("after move: src = %+v, dst = %+v", src, dst)
		}
	})

	t.Run("create over existing id conflicts", func(t *testing.T) {
		_, err := b.Commit(ctx, []ports.Write{
			{Op: ports.WriteCreate, Collection: to, ID: "n1", Fields: ports.Fields{}},
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("Commit() error = %v, want ErrConflict", err)
		}
	})
}

func TestBackend_HealthCheck(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	if b.Name() != "backend-memory" {
		t.Errorf("Name() = %q", b.Name())
	}
	if err := b.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v", err)
	}
}
