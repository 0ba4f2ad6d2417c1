package mocks

import (
	"github.com/stretchr/testify/mock"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// MockNameMapStore is a mock type for the NameMapStore type.
type MockNameMapStore struct {
	mock.Mock
}

// NewMockNameMapStore creates a new instance of MockNameMapStore. It also
// registers a cleanup function to assert the mock's expectations.
func NewMockNameMapStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNameMapStore {
	mockStore := &MockNameMapStore{}
	mockStore.Mock.Test(t)

	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	return mockStore
}

// SaveNameMap provides a mock function with given fields: path, names
func (_m *MockNameMapStore) SaveNameMap(path m.Path, names m.NameMap) error {
	ret := _m.Called(path, names)

	return ret.Error(0)
}

// LoadNameMap provides a mock function with given fields: path
func (_m *MockNameMapStore) LoadNameMap(path m.Path) (m.NameMap, error) {
	ret := _m.Called(path)

	return ret.Get(0).(m.NameMap), ret.Error(1)
}
