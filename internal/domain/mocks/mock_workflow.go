// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"checkgen.dev/pkg/checkgen/internal/domain"
)

// MockWorkflow is a mock type for the Workflow type.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a
// cleanup function to assert the mock's expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Mock.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// Generate provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Verify provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Verify(ctx context.Context, args domain.VerifyArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Batch provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Batch(ctx context.Context, args domain.BatchArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}
