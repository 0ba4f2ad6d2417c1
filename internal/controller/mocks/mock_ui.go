// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// MockUI is a mock type for the UI type.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a new instance of MockUI. It also registers a cleanup
// function to assert the mock's expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// DisplaySummary provides a mock function with given fields: ctx, summary
func (_m *MockUI) DisplaySummary(ctx context.Context, summary m.RunSummary) error {
	ret := _m.Called(ctx, summary)

	return ret.Error(0)
}

// DisplayDiff provides a mock function with given fields: ctx, source, diff
func (_m *MockUI) DisplayDiff(ctx context.Context, source m.Path, diff string) {
	_m.Called(ctx, source, diff)
}

// DisplayUpToDate provides a mock function with given fields: ctx, source
func (_m *MockUI) DisplayUpToDate(ctx context.Context, source m.Path) {
	_m.Called(ctx, source)
}

// DisplayBatchResult provides a mock function with given fields: ctx, input, output, err
func (_m *MockUI) DisplayBatchResult(ctx context.Context, input, output m.Path, err error) {
	_m.Called(ctx, input, output, err)
}
