package firestore_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jsamuelsen11/todolists/internal/adapters/clients/acl/firestore"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

const db = "projects/todolists-test/databases/(default)"

func TestDocumentNames(t *testing.T) {
	t.Parallel()

	if got := firestore.Database("todolists-test"); got != db {
		t.Errorf("Database() = %q, want %q", got, db)
	}

	name := firestore.DocumentName(db, "users/u1/todoLists", "L1")
	want := db + "/documents/users/u1/todoLists/L1"
	if name != want {
		t.Errorf("DocumentName() = %q, want %q", name, want)
	}
	if got := firestore.DocumentID(name); got != "L1" {
		t.Errorf("DocumentID() = %q, want L1", got)
	}
}

func TestToValue(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 12, 30, 0, 500, time.FixedZone("CET", 3600))

	s, err := firestore.ToValue("high")
	if err != nil || s.StringValue == nil || *s.StringValue != "high" || s.TimestampValue != nil {
		t.Errorf("ToValue(string) = %+v, %v", s, err)
	}

	ts, err := firestore.ToValue(created)
	if err != nil || ts.TimestampValue == nil || *ts.TimestampValue != "2026-03-01T11:30:00.0000005Z" {
		t.Errorf("ToValue(time) = %+v, %v", ts, err)
	}

	if _, err := firestore.ToValue(42); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ToValue(int) error = %v, want ErrValidation", err)
	}
}

func TestFieldsRoundTripThroughJSON(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := ports.Fields{"title": "Dishes", "priority": "low", "createdAt": created}

	wire, err := firestore.ToFields(in)
	if err != nil {
		t.Fatalf("ToFields() error = %v", err)
	}
	b, err := json.Marshal(firestore.Document{Fields: wire})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var doc firestore.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	doc.Name = db + "/documents/users/u1/todoLists/L1/tasks/t1"

	got := firestore.ToDomainDocument(&doc)
	if got.ID != "t1" {
		t.Errorf("ID = %q, want t1", got.ID)
	}
	if got.Fields.String("title") != "Dishes" || got.Fields.String("priority") != "low" {
		t.Errorf("Fields = %v", got.Fields)
	}
	if !got.Fields.Time("createdAt").Equal(created) {
		t.Errorf("createdAt = %v, want %v", got.Fields.Time("createdAt"), created)
	}
}

func TestFromFields_DropsUnknownKinds(t *testing.T) {
	t.Parallel()

	var doc firestore.Document
	body := `{"fields":{"n":{"integerValue":"3"},"z":{"nullValue":null},"bad":{"timestampValue":"yesterday"},"ok":{"stringValue":""}}}`
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	got := firestore.FromFields(doc.Fields)
	if len(got) != 1 {
		t.Errorf("FromFields() = %v, want only ok", got)
	}
	if v, ok := got["ok"]; !ok || v != "" {
		t.Errorf("ok = %v, want empty string", v)
	}
}

func TestToCommitRequest(t *testing.T) {
	t.Parallel()

	req, err := firestore.ToCommitRequest(db, []ports.Write{
		{Op: ports.WriteCreate, Collection: "users/u1/todoLists/L2/tasks", ID: "c1", Fields: ports.Fields{"title": "Dishes"}},
		{Op: ports.WriteDelete, Collection: "users/u1/todoLists/L1/tasks", ID: "t1"},
	})
	if err != nil {
		t.Fatalf("ToCommitRequest() error = %v", err)
	}

	b, _ := json.Marshal(req)
	want := `{"writes":[` +
		`{"update":{"name":"` + db + `/documents/users/u1/todoLists/L2/tasks/c1","fields":{"title":{"stringValue":"Dishes"}}},"currentDocument":{"exists":false}},` +
		`{"delete":"` + db + `/documents/users/u1/todoLists/L1/tasks/t1","currentDocument":{"exists":true}}]}`
	if string(b) != want {
		t.Errorf("commit body =\n%s\nwant\n%s", b, want)
	}
}

func TestToCommitRequest_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]ports.Write{
		"missing id": {Op: ports.WriteDelete, Collection: "c"},
		"nested id":  {Op: ports.WriteDelete, Collection: "c", ID: "a/b"},
		"unknown op": {Collection: "c", ID: "x"},
		"bad field":  {Op: ports.WriteCreate, Collection: "c", ID: "x", Fields: ports.Fields{"n": 3}},
	}

	for name, w := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := firestore.ToCommitRequest(db, []ports.Write{w}); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("ToCommitRequest() error = %v, want ErrValidation", err)
			}
		})
	}
}
