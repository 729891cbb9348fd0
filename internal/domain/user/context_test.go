package user

import (
	"context"
	"testing"
)

func TestSessionFromContext(t *testing.T) {
	t.Parallel()

	if got := SessionFromContext(context.Background()); got != nil {
		t.Fatalf("SessionFromContext(empty) = %v, want nil", got)
	}

	s := &Session{ID: "sess-1", User: User{ID: "u1", Email: "ada@example.com"}}
	ctx := WithSession(context.Background(), s)

	if got := SessionFromContext(ctx); got != s {
		t.Errorf("SessionFromContext() = %v, want %v", got, s)
	}
}
