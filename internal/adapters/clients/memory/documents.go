package memory

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// authorize checks that the context's session may access collection: the
// caller's ID token must be valid and the path must lie under
// users/{caller's uid}.
func (b *Backend) authorize(ctx context.Context, path string) error {
	s := user.SessionFromContext(ctx)
	if s == nil {
		return fmt.Errorf("no session: %w", domain.ErrUnauthenticated)
	}
	u, err := b.verify(s.IDToken)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(path, "users/"+u.ID+"/") {
		return fmt.Errorf("%s: %w", path, domain.ErrForbidden)
	}
	return nil
}

func checkFields(fields ports.Fields) error {
	for name, v := range fields {
		switch v.(type) {
		case string, time.Time:
		default:
			return &domain.ValidationError{Fields: map[string]string{
				name: fmt.Sprintf("unsupported value type %T", v),
			}}
		}
	}
	return nil
}

// Create implements ports.DocumentStore.
func (b *Backend) Create(ctx context.Context, path string, fields ports.Fields) (string, error) {
	if err := b.authorize(ctx, path); err != nil {
		return "", err
	}
	if err := checkFields(fields); err != nil {
		return "", err
	}

	b.docMu.Lock()
	defer b.docMu.Unlock()

	id := newID()
	b.putLocked(path, id, fields)
	return id, nil
}

// List implements ports.DocumentStore.
func (b *Backend) List(ctx context.Context, path string) ([]ports.Document, error) {
	if err := b.authorize(ctx, path); err != nil {
		return nil, err
	}

	b.docMu.RLock()
	defer b.docMu.RUnlock()

	c, ok := b.collections[path]
	if !ok {
		return []ports.Document{}, nil
	}
	docs := make([]ports.Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, ports.Document{ID: id, Fields: maps.Clone(c.docs[id])})
	}
	return docs, nil
}

// Update implements ports.DocumentStore.
func (b *Backend) Update(ctx context.Context, path, id string, fields ports.Fields) error {
	if err := b.authorize(ctx, path); err != nil {
		return err
	}
	if err := checkFields(fields); err != nil {
		return err
	}

	b.docMu.Lock()
	defer b.docMu.Unlock()

	doc, ok := b.getLocked(path, id)
	if !ok {
		return fmt.Errorf("%s/%s: %w", path, id, domain.ErrNotFound)
	}
	maps.Copy(doc, fields)
	return nil
}

// Delete implements ports.DocumentStore.
func (b *Backend) Delete(ctx context.Context, path, id string) error {
	if err := b.authorize(ctx, path); err != nil {
		return err
	}

	b.docMu.Lock()
	defer b.docMu.Unlock()

	if _, ok := b.getLocked(path, id); !ok {
		return fmt.Errorf("%s/%s: %w", path, id, domain.ErrNotFound)
	}
	b.deleteLocked(path, id)
	return nil
}

// Commit implements ports.BatchWriter. Every precondition is checked before
// anything is written.
func (b *Backend) Commit(ctx context.Context, writes []ports.Write) ([]string, error) {
	for _, w := range writes {
		if err := b.authorize(ctx, w.Collection); err != nil {
			return nil, err
		}
		if err := checkFields(w.Fields); err != nil {
			return nil, err
		}
	}

	b.docMu.Lock()
	defer b.docMu.Unlock()

	ids := make([]string, len(writes))
	for i, w := range writes {
		ids[i] = w.ID
		switch w.Op {
		case ports.WriteCreate:
			if ids[i] == "" {
				ids[i] = newID()
			}
			if _, exists := b.getLocked(w.Collection, ids[i]); exists {
				return nil, fmt.Errorf("%s/%s: %w", w.Collection, ids[i], domain.ErrConflict)
			}
		case ports.WriteDelete:
			if _, exists := b.getLocked(w.Collection, w.ID); !exists {
				return nil, fmt.Errorf("%s/%s: %w", w.Collection, w.ID, domain.ErrNotFound)
			}
		default:
			return nil, fmt.Errorf("write %d: unknown op %d: %w", i, w.Op, domain.ErrValidation)
		}
	}

	for i, w := range writes {
		if w.Op == ports.WriteCreate {
			b.putLocked(w.Collection, ids[i], w.Fields)
		} else {
			b.deleteLocked(w.Collection, w.ID)
		}
	}
	return ids, nil
}

func (b *Backend) getLocked(path, id string) (ports.Fields, bool) {
	c, ok := b.collections[path]
	if !ok {
		return nil, false
	}
	doc, ok := c.docs[id]
	return doc, ok
}

func (b *Backend) putLocked(path, id string, fields ports.Fields) {
	c, ok := b.collections[path]
	if !ok {
		c = &collection{docs: make(map[string]ports.Fields)}
		b.collections[path] = c
	}
	c.order = append(c.order, id)
	c.docs[id] = maps.Clone(fields)
	if c.docs[id] == nil {
		c.docs[id] = ports.Fields{}
	}
}

func (b *Backend) deleteLocked(path, id string) {
	c := b.collections[path]
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
