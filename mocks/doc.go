// Package mocks provides testify mocks for the interfaces in internal/ports.
// Each mock offers an EXPECT() helper so expectations read as method calls:
//
//	store := mocks.NewMockDocumentStore(t)
//	store.EXPECT().List(mock.Anything, "users/u1/todoLists").Return(nil, nil)
package mocks

import "github.com/stretchr/testify/mock"

// testingT is the subset of *testing.T the constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// errorAt returns the error stored at index i of ret, or nil.
func errorAt(ret mock.Arguments, i int) error {
	if ret.Get(i) == nil {
		return nil
	}
	return ret.Error(i)
}
