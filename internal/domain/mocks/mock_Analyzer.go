package mocks

import (
	model "github.com/mouse-blink/casecov/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockAnalyzer is a testify mock of the Analyzer interface
type MockAnalyzer struct {
	mock.Mock
}

type MockAnalyzer_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAnalyzer) EXPECT() *MockAnalyzer_Expecter {
	return &MockAnalyzer_Expecter{mock: &_m.Mock}
}

// Analyze provides a mock function with given fields: member, cases
func (_m *MockAnalyzer) Analyze(member model.Member, cases []model.Case) model.MemberReport {
	ret := _m.Called(member, cases)

	if len(ret) == 0 {
		panic("no return value specified for Analyze")
	}

	var r0 model.MemberReport
	if rf, ok := ret.Get(0).(func(model.Member, []model.Case) model.MemberReport); ok {
		r0 = rf(member, cases)
	} else {
		r0 = ret.Get(0).(model.MemberReport)
	}

	return r0
}

// MockAnalyzer_Analyze_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Analyze'
type MockAnalyzer_Analyze_Call struct {
	*mock.Call
}

// Analyze is a helper method to define mock.On call
//   - member model.Member
//   - cases []model.Case
func (_e *MockAnalyzer_Expecter) Analyze(member interface{}, cases interface{}) *MockAnalyzer_Analyze_Call {
	return &MockAnalyzer_Analyze_Call{Call: _e.mock.On("Analyze", member, cases)}
}

func (_c *MockAnalyzer_Analyze_Call) Run(run func(member model.Member, cases []model.Case)) *MockAnalyzer_Analyze_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(model.Member), args[1].([]model.Case))
	})
	return _c
}

func (_c *MockAnalyzer_Analyze_Call) Return(_a0 model.MemberReport) *MockAnalyzer_Analyze_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockAnalyzer_Analyze_Call) RunAndReturn(run func(model.Member, []model.Case) model.MemberReport) *MockAnalyzer_Analyze_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockAnalyzer creates a new instance of MockAnalyzer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAnalyzer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAnalyzer {
	mock := &MockAnalyzer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
