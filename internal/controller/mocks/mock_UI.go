package mocks

import (
	model "github.com/mouse-blink/casecov/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockUI is a testify mock of the UI interface
type MockUI struct {
	mock.Mock
}

type MockUI_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUI) EXPECT() *MockUI_Expecter {
	return &MockUI_Expecter{mock: &_m.Mock}
}

// DisplayMembers provides a mock function with given fields: members
func (_m *MockUI) DisplayMembers(members []model.MemberSummary) error {
	ret := _m.Called(members)

	if len(ret) == 0 {
		panic("no return value specified for DisplayMembers")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func([]model.MemberSummary) error); ok {
		r0 = rf(members)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockUI_DisplayMembers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayMembers'
type MockUI_DisplayMembers_Call struct {
	*mock.Call
}

// DisplayMembers is a helper method to define mock.On call
//   - members []model.MemberSummary
func (_e *MockUI_Expecter) DisplayMembers(members interface{}) *MockUI_DisplayMembers_Call {
	return &MockUI_DisplayMembers_Call{Call: _e.mock.On("DisplayMembers", members)}
}

func (_c *MockUI_DisplayMembers_Call) Run(run func(members []model.MemberSummary)) *MockUI_DisplayMembers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].([]model.MemberSummary))
	})
	return _c
}

func (_c *MockUI_DisplayMembers_Call) Return(_a0 error) *MockUI_DisplayMembers_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockUI_DisplayMembers_Call) RunAndReturn(run func([]model.MemberSummary) error) *MockUI_DisplayMembers_Call {
	_c.Call.Return(run)
	return _c
}

// DisplayReports provides a mock function with given fields: run
func (_m *MockUI) DisplayReports(run model.Run) error {
	ret := _m.Called(run)

	if len(ret) == 0 {
		panic("no return value specified for DisplayReports")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(model.Run) error); ok {
		r0 = rf(run)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockUI_DisplayReports_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayReports'
type MockUI_DisplayReports_Call struct {
	*mock.Call
}

// DisplayReports is a helper method to define mock.On call
//   - run model.Run
func (_e *MockUI_Expecter) DisplayReports(run interface{}) *MockUI_DisplayReports_Call {
	return &MockUI_DisplayReports_Call{Call: _e.mock.On("DisplayReports", run)}
}

func (_c *MockUI_DisplayReports_Call) Run(run func(run model.Run)) *MockUI_DisplayReports_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(model.Run))
	})
	return _c
}

func (_c *MockUI_DisplayReports_Call) Return(_a0 error) *MockUI_DisplayReports_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockUI_DisplayReports_Call) RunAndReturn(run func(model.Run) error) *MockUI_DisplayReports_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
