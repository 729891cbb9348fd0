// Package firestore holds the Firestore REST wire formats and their
// translation to ports.Document values.
package firestore

// Value is a Firestore typed value. Exactly one field is set; only the
// kinds this service stores are modeled.
type Value struct {
	StringValue    *string `json:"stringValue,omitempty"`
	TimestampValue *string `json:"timestampValue,omitempty"`
	NullValue      *string `json:"nullValue,omitempty"`
}

// Document is a Firestore document resource. Name is the full resource
// name: projects/{p}/databases/{d}/documents/{path}.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// ListResponse is one page of documents.list.
type ListResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

// Precondition guards a write on the target document's existence.
type Precondition struct {
	Exists *bool `json:"exists,omitempty"`
}

// Write is one entry of a commit. Exactly one of Update and Delete is set.
type Write struct {
	Update          *Document     `json:"update,omitempty"`
	Delete          string        `json:"delete,omitempty"`
	CurrentDocument *Precondition `json:"currentDocument,omitempty"`
}

// CommitRequest is the body of documents:commit.
type CommitRequest struct {
	Writes []Write `json:"writes"`
}

// CommitResponse is returned by documents:commit.
type CommitResponse struct {
	WriteResults []struct {
		UpdateTime string `json:"updateTime"`
	} `json:"writeResults"`
	CommitTime string `json:"commitTime"`
}
