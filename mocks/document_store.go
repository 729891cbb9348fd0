package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/ports"
)

// MockDocumentStore is a mock of ports.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

// NewMockDocumentStore creates a MockDocumentStore that asserts its
// expectations when the test ends.
func NewMockDocumentStore(t testingT) *MockDocumentStore {
	m := &MockDocumentStore{}
	register(&m.Mock, t)
	return m
}

func (m *MockDocumentStore) Create(ctx context.Context, collection string, fields ports.Fields) (string, error) {
	ret := m.Called(ctx, collection, fields)
	if fn, ok := ret.Get(0).(func(context.Context, string, ports.Fields) (string, error)); ok {
		return fn(ctx, collection, fields)
	}
	return ret.String(0), errorAt(ret, 1)
}

func (m *MockDocumentStore) List(ctx context.Context, collection string) ([]ports.Document, error) {
	ret := m.Called(ctx, collection)
	if fn, ok := ret.Get(0).(func(context.Context, string) ([]ports.Document, error)); ok {
		return fn(ctx, collection)
	}
	docs, _ := ret.Get(0).([]ports.Document)
	return docs, errorAt(ret, 1)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields ports.Fields) error {
	return errorAt(m.Called(ctx, collection, id, fields), 0)
}

func (m *MockDocumentStore) Delete(ctx context.Context, collection, id string) error {
	return errorAt(m.Called(ctx, collection, id), 0)
}

// EXPECT returns the expectation builder.
func (m *MockDocumentStore) EXPECT() *MockDocumentStoreExpecter {
	return &MockDocumentStoreExpecter{mock: &m.Mock}
}

// MockDocumentStoreExpecter builds expectations for MockDocumentStore.
type MockDocumentStoreExpecter struct {
	mock *mock.Mock
}

func (e *MockDocumentStoreExpecter) Create(ctx, collection, fields any) *mock.Call {
	return e.mock.On("Create", ctx, collection, fields)
}

func (e *MockDocumentStoreExpecter) List(ctx, collection any) *mock.Call {
	return e.mock.On("List", ctx, collection)
}

func (e *MockDocumentStoreExpecter) Update(ctx, collection, id, fields any) *mock.Call {
	return e.mock.On("Update", ctx, collection, id, fields)
}

func (e *MockDocumentStoreExpecter) Delete(ctx, collection, id any) *mock.Call {
	return e.mock.On("Delete", ctx, collection, id)
}

// MockBatchWriter is a mock of ports.BatchWriter.
type MockBatchWriter struct {
	mock.Mock
}

// NewMockBatchWriter creates a MockBatchWriter that asserts its
// expectations when the test ends.
func NewMockBatchWriter(t testingT) *MockBatchWriter {
	m := &MockBatchWriter{}
	register(&m.Mock, t)
	return m
}

func (m *MockBatchWriter) Commit(ctx context.Context, writes []ports.Write) ([]string, error) {
	ret := m.Called(ctx, writes)
	ids, _ := ret.Get(0).([]string)
	return ids, errorAt(ret, 1)
}

// EXPECT returns the expectation builder.
func (m *MockBatchWriter) EXPECT() *MockBatchWriterExpecter {
	return &MockBatchWriterExpecter{mock: &m.Mock}
}

// MockBatchWriterExpecter builds expectations for MockBatchWriter.
type MockBatchWriterExpecter struct {
	mock *mock.Mock
}

func (e *MockBatchWriterExpecter) Commit(ctx, writes any) *mock.Call {
	return e.mock.On("Commit", ctx, writes)
}
