package mocks

import (
	"context"
	model "github.com/mouse-blink/casecov/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockCaseExtractor is a testify mock of the CaseExtractor interface
type MockCaseExtractor struct {
	mock.Mock
}

type MockCaseExtractor_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCaseExtractor) EXPECT() *MockCaseExtractor_Expecter {
	return &MockCaseExtractor_Expecter{mock: &_m.Mock}
}

// Extract provides a mock function with given fields: ctx, paths, exclude
func (_m *MockCaseExtractor) Extract(ctx context.Context, paths []model.Path, exclude []string) (model.CaseSet, error) {
	ret := _m.Called(ctx, paths, exclude)

	if len(ret) == 0 {
		panic("no return value specified for Extract")
	}

	var r0 model.CaseSet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []model.Path, []string) (model.CaseSet, error)); ok {
		return rf(ctx, paths, exclude)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []model.Path, []string) model.CaseSet); ok {
		r0 = rf(ctx, paths, exclude)
	} else {
		r0 = ret.Get(0).(model.CaseSet)
	}

	if rf, ok := ret.Get(1).(func(context.Context, []model.Path, []string) error); ok {
		r1 = rf(ctx, paths, exclude)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockCaseExtractor_Extract_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Extract'
type MockCaseExtractor_Extract_Call struct {
	*mock.Call
}

// Extract is a helper method to define mock.On call
//   - ctx context.Context
//   - paths []model.Path
//   - exclude []string
func (_e *MockCaseExtractor_Expecter) Extract(ctx interface{}, paths interface{}, exclude interface{}) *MockCaseExtractor_Extract_Call {
	return &MockCaseExtractor_Extract_Call{Call: _e.mock.On("Extract", ctx, paths, exclude)}
}

func (_c *MockCaseExtractor_Extract_Call) Run(run func(ctx context.Context, paths []model.Path, exclude []string)) *MockCaseExtractor_Extract_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]model.Path), args[2].([]string))
	})
	return _c
}

func (_c *MockCaseExtractor_Extract_Call) Return(_a0 model.CaseSet, _a1 error) *MockCaseExtractor_Extract_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockCaseExtractor_Extract_Call) RunAndReturn(run func(context.Context, []model.Path, []string) (model.CaseSet, error)) *MockCaseExtractor_Extract_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockCaseExtractor creates a new instance of MockCaseExtractor. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockCaseExtractor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCaseExtractor {
	mock := &MockCaseExtractor{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
