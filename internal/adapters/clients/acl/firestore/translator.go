package firestore

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/docpath"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Database returns the resource name of the project's default database.
func Database(projectID string) string {
	return "projects/" + projectID + "/databases/(default)"
}

// DocumentsRoot returns the prefix of every document name in database.
func DocumentsRoot(database string) string {
	return database + "/documents"
}

// DocumentName returns the full resource name of id within collection.
func DocumentName(database, collection, id string) string {
	return DocumentsRoot(database) + "/" + docpath.Doc(collection, id)
}

// DocumentID returns the last segment of a document name.
func DocumentID(name string) string {
	if _, id, ok := docpath.Split(name); ok {
		return id
	}
	return name
}

// ToValue encodes a field value. Only strings and timestamps are stored.
func ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return Value{StringValue: &x}, nil
	case time.Time:
		ts := x.UTC().Format(time.RFC3339Nano)
		return Value{TimestampValue: &ts}, nil
	default:
		return Value{}, fmt.Errorf("unsupported field type %T: %w", v, domain.ErrValidation)
	}
}

// ToFields encodes every field of f.
func ToFields(f ports.Fields) (map[string]Value, error) {
	out := make(map[string]Value, len(f))
	for name, v := range f {
		val, err := ToValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}

// FromFields decodes wire fields. Kinds this service never writes, and
// unparseable timestamps, are dropped.
func FromFields(fields map[string]Value) ports.Fields {
	out := make(ports.Fields, len(fields))
	for name, v := range fields {
		switch {
		case v.StringValue != nil:
			out[name] = *v.StringValue
		case v.TimestampValue != nil:
			if ts, err := time.Parse(time.RFC3339Nano, *v.TimestampValue); err == nil {
				out[name] = ts
			}
		}
	}
	return out
}

// ToDomainDocument converts a wire document.
func ToDomainDocument(d *Document) ports.Document {
	return ports.Document{ID: DocumentID(d.Name), Fields: FromFields(d.Fields)}
}

// ToDomainDocuments converts a page of wire documents.
func ToDomainDocuments(docs []Document) []ports.Document {
	out := make([]ports.Document, len(docs))
	for i := range docs {
		out[i] = ToDomainDocument(&docs[i])
	}
	return out
}

// ToCommitRequest converts batched writes. Every write must carry its
// document id; creates assert absence and deletes assert presence.
func ToCommitRequest(database string, writes []ports.Write) (CommitRequest, error) {
	req := CommitRequest{Writes: make([]Write, 0, len(writes))}
	for i, w := range writes {
		if w.ID == "" || strings.Contains(w.ID, "/") {
			return CommitRequest{}, fmt.Errorf("write %d: invalid document id %q: %w", i, w.ID, domain.ErrValidation)
		}
		name := DocumentName(database, w.Collection, w.ID)

		switch w.Op {
		case ports.WriteCreate:
			fields, err := ToFields(w.Fields)
			if err != nil {
				return CommitRequest{}, fmt.Errorf("write %d: %w", i, err)
			}
			req.Writes = append(req.Writes, Write{
				Update:          &Document{Name: name, Fields: fields},
				CurrentDocument: exists(false),
			})
		case ports.WriteDelete:
			req.Writes = append(req.Writes, Write{
				Delete:          name,
				CurrentDocument: exists(true),
			})
		default:
			return CommitRequest{}, fmt.Errorf("write %d: unknown op %d: %w", i, w.Op, domain.ErrValidation)
		}
	}
	return req, nil
}

func exists(v bool) *Precondition {
	return &Precondition{Exists: &v}
}
