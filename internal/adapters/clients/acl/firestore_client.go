package acl

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todolists/internal/adapters/clients/acl/firestore"
	"github.com/jsamuelsen11/todolists/internal/platform/httpclient"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// listPageSize is the page size requested from documents.list.
const listPageSize = 300

var (
	_ ports.DocumentStore = (*FirestoreClient)(nil)
	_ ports.BatchWriter   = (*FirestoreClient)(nil)
)

// FirestoreClient implements ports.DocumentStore and ports.BatchWriter
// against the Firestore REST API. Calls are authorized with the ID token of
// the session in the request context, so the project's security rules see
// the signed-in user.
type FirestoreClient struct {
	req      *Requester
	database string
	logger   *slog.Logger
}

// NewFirestoreClient creates a FirestoreClient for the default database of
// projectID. client must be rooted at the Firestore v1 URL.
func NewFirestoreClient(client *httpclient.Client, projectID, apiKey string, logger *slog.Logger) *FirestoreClient {
	return &FirestoreClient{
		req:      NewRequester(client, logger, WithAPIKey(apiKey), WithSessionToken()),
		database: firestore.Database(projectID),
		logger:   logger,
	}
}

// Create adds a document with POST documents/{collection}; Firestore
// assigns the id. The call is not retried.
func (c *FirestoreClient) Create(ctx context.Context, collection string, fields ports.Fields) (string, error) {
	body, err := firestore.ToFields(fields)
	if err != nil {
		return "", err
	}

	var doc firestore.Document
	if err := c.req.Do(ctx, http.MethodPost, c.path(collection), nil, http.StatusOK,
		firestore.Document{Fields: body}, &doc); err != nil {
		return "", err
	}
	return firestore.DocumentID(doc.Name), nil
}

// List pages through GET documents/{collection} and sorts the result by
// createdAt. The server-side orderBy would omit documents without the field.
func (c *FirestoreClient) List(ctx context.Context, collection string) ([]ports.Document, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(listPageSize))

	docs := []ports.Document{}
	for {
		var page firestore.ListResponse
		if err := c.req.Do(ctx, http.MethodGet, c.path(collection), q, http.StatusOK, nil, &page); err != nil {
			return nil, err
		}
		docs = append(docs, firestore.ToDomainDocuments(page.Documents)...)

		if page.NextPageToken == "" {
			slices.SortStableFunc(docs, func(a, b ports.Document) int {
				return a.Fields.Time("createdAt").Compare(b.Fields.Time("createdAt"))
			})
			return docs, nil
		}
		q.Set("pageToken", page.NextPageToken)
	}
}

// Update patches the named fields only, with updateMask.fieldPaths and an
// exists precondition so a missing document is NotFound rather than
// created.
func (c *FirestoreClient) Update(ctx context.Context, collection, id string, fields ports.Fields) error {
	body, err := firestore.ToFields(fields)
	if err != nil {
		return err
	}

	q := url.Values{}
	for name := range fields {
		q.Add("updateMask.fieldPaths", name)
	}
	q.Set("currentDocument.exists", "true")

	return c.req.Do(ctx, http.MethodPatch, c.docPath(collection, id), q, http.StatusOK,
		firestore.Document{Fields: body}, nil)
}

// Delete removes a document. The exists precondition turns a missing
// document into NotFound.
func (c *FirestoreClient) Delete(ctx context.Context, collection, id string) error {
	q := url.Values{}
	q.Set("currentDocument.exists", "true")

	return c.req.Do(ctx, http.MethodDelete, c.docPath(collection, id), q, http.StatusOK, nil, nil)
}

// Commit applies writes atomically with POST documents:commit. Creates
// without an id get a client-generated one, since a commit names every
// document up front.
func (c *FirestoreClient) Commit(ctx context.Context, writes []ports.Write) ([]string, error) {
	writes = append([]ports.Write(nil), writes...)
	ids := make([]string, len(writes))
	for i := range writes {
		if writes[i].Op == ports.WriteCreate && writes[i].ID == "" {
			writes[i].ID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		ids[i] = writes[i].ID
	}

	body, err := firestore.ToCommitRequest(c.database, writes)
	if err != nil {
		return nil, err
	}

	var resp firestore.CommitResponse
	if err := c.req.Do(ctx, http.MethodPost, "/"+c.database+"/documents:commit", nil, http.StatusOK, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.WriteResults) != len(writes) {
		c.logger.WarnContext(ctx, "commit returned unexpected write count",
			slog.String("operation", "FirestoreClient.Commit"),
			slog.Int("writes", len(writes)),
			slog.Int("results", len(resp.WriteResults)),
		)
	}
	return ids, nil
}

// path returns the URL path of a collection.
func (c *FirestoreClient) path(collection string) string {
	return "/" + firestore.DocumentsRoot(c.database) + "/" + collection
}

func (c *FirestoreClient) docPath(collection, id string) string {
	return c.path(collection) + "/" + id
}
