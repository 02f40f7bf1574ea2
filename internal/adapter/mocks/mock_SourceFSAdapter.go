package mocks

import (
	adapter "github.com/mouse-blink/casecov/internal/adapter"
	model "github.com/mouse-blink/casecov/internal/model"
	mock "github.com/stretchr/testify/mock"
	"os"
)

// MockSourceFSAdapter is a testify mock of the SourceFSAdapter interface
type MockSourceFSAdapter struct {
	mock.Mock
}

type MockSourceFSAdapter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSourceFSAdapter) EXPECT() *MockSourceFSAdapter_Expecter {
	return &MockSourceFSAdapter_Expecter{mock: &_m.Mock}
}

// Find provides a mock function with given fields: roots, exclude
func (_m *MockSourceFSAdapter) Find(roots []model.Path, exclude []string) ([]model.Path, error) {
	ret := _m.Called(roots, exclude)

	if len(ret) == 0 {
		panic("no return value specified for Find")
	}

	var r0 []model.Path
	var r1 error
	if rf, ok := ret.Get(0).(func([]model.Path, []string) ([]model.Path, error)); ok {
		return rf(roots, exclude)
	}
	if rf, ok := ret.Get(0).(func([]model.Path, []string) []model.Path); ok {
		r0 = rf(roots, exclude)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Path)
		}
	}

	if rf, ok := ret.Get(1).(func([]model.Path, []string) error); ok {
		r1 = rf(roots, exclude)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSourceFSAdapter_Find_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Find'
type MockSourceFSAdapter_Find_Call struct {
	*mock.Call
}

// Find is a helper method to define mock.On call
//   - roots []model.Path
//   - exclude []string
func (_e *MockSourceFSAdapter_Expecter) Find(roots interface{}, exclude interface{}) *MockSourceFSAdapter_Find_Call {
	return &MockSourceFSAdapter_Find_Call{Call: _e.mock.On("Find", roots, exclude)}
}

func (_c *MockSourceFSAdapter_Find_Call) Run(run func(roots []model.Path, exclude []string)) *MockSourceFSAdapter_Find_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].([]model.Path), args[1].([]string))
	})
	return _c
}

func (_c *MockSourceFSAdapter_Find_Call) Return(_a0 []model.Path, _a1 error) *MockSourceFSAdapter_Find_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSourceFSAdapter_Find_Call) RunAndReturn(run func([]model.Path, []string) ([]model.Path, error)) *MockSourceFSAdapter_Find_Call {
	_c.Call.Return(run)
	return _c
}

// Walk provides a mock function with given fields: root, recursive, fn
func (_m *MockSourceFSAdapter) Walk(root model.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	ret := _m.Called(root, recursive, fn)

	if len(ret) == 0 {
		panic("no return value specified for Walk")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(model.Path, bool, adapter.FilepathWalkFunc) error); ok {
		r0 = rf(root, recursive, fn)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSourceFSAdapter_Walk_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Walk'
type MockSourceFSAdapter_Walk_Call struct {
	*mock.Call
}

// Walk is a helper method to define mock.On call
//   - root model.Path
//   - recursive bool
//   - fn adapter.FilepathWalkFunc
func (_e *MockSourceFSAdapter_Expecter) Walk(root interface{}, recursive interface{}, fn interface{}) *MockSourceFSAdapter_Walk_Call {
	return &MockSourceFSAdapter_Walk_Call{Call: _e.mock.On("Walk", root, recursive, fn)}
}

func (_c *MockSourceFSAdapter_Walk_Call) Run(run func(root model.Path, recursive bool, fn adapter.FilepathWalkFunc)) *MockSourceFSAdapter_Walk_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(model.Path), args[1].(bool), args[2].(adapter.FilepathWalkFunc))
	})
	return _c
}

func (_c *MockSourceFSAdapter_Walk_Call) Return(_a0 error) *MockSourceFSAdapter_Walk_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSourceFSAdapter_Walk_Call) RunAndReturn(run func(model.Path, bool, adapter.FilepathWalkFunc) error) *MockSourceFSAdapter_Walk_Call {
	_c.Call.Return(run)
	return _c
}

// ReadFile provides a mock function with given fields: path
func (_m *MockSourceFSAdapter) ReadFile(path model.Path) ([]byte, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for ReadFile")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(model.Path) ([]byte, error)); ok {
		return rf(path)
	}
	if rf, ok := ret.Get(0).(func(model.Path) []byte); ok {
		r0 = rf(path)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(model.Path) error); ok {
		r1 = rf(path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSourceFSAdapter_ReadFile_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ReadFile'
type MockSourceFSAdapter_ReadFile_Call struct {
	*mock.Call
}

// ReadFile is a helper method to define mock.On call
//   - path model.Path
func (_e *MockSourceFSAdapter_Expecter) ReadFile(path interface{}) *MockSourceFSAdapter_ReadFile_Call {
	return &MockSourceFSAdapter_ReadFile_Call{Call: _e.mock.On("ReadFile", path)}
}

func (_c *MockSourceFSAdapter_ReadFile_Call) Run(run func(path model.Path)) *MockSourceFSAdapter_ReadFile_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(model.Path))
	})
	return _c
}

func (_c *MockSourceFSAdapter_ReadFile_Call) Return(_a0 []byte, _a1 error) *MockSourceFSAdapter_ReadFile_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSourceFSAdapter_ReadFile_Call) RunAndReturn(run func(model.Path) ([]byte, error)) *MockSourceFSAdapter_ReadFile_Call {
	_c.Call.Return(run)
	return _c
}

// FileInfo provides a mock function with given fields: path
func (_m *MockSourceFSAdapter) FileInfo(path model.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for FileInfo")
	}

	var r0 os.FileInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(model.Path) (os.FileInfo, error)); ok {
		return rf(path)
	}
	if rf, ok := ret.Get(0).(func(model.Path) os.FileInfo); ok {
		r0 = rf(path)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(os.FileInfo)
		}
	}

	if rf, ok := ret.Get(1).(func(model.Path) error); ok {
		r1 = rf(path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSourceFSAdapter_FileInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FileInfo'
type MockSourceFSAdapter_FileInfo_Call struct {
	*mock.Call
}

// FileInfo is a helper method to define mock.On call
//   - path model.Path
func (_e *MockSourceFSAdapter_Expecter) FileInfo(path interface{}) *MockSourceFSAdapter_FileInfo_Call {
	return &MockSourceFSAdapter_FileInfo_Call{Call: _e.mock.On("FileInfo", path)}
}

func (_c *MockSourceFSAdapter_FileInfo_Call) Run(run func(path model.Path)) *MockSourceFSAdapter_FileInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(model.Path))
	})
	return _c
}

func (_c *MockSourceFSAdapter_FileInfo_Call) Return(_a0 os.FileInfo, _a1 error) *MockSourceFSAdapter_FileInfo_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSourceFSAdapter_FileInfo_Call) RunAndReturn(run func(model.Path) (os.FileInfo, error)) *MockSourceFSAdapter_FileInfo_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSourceFSAdapter creates a new instance of MockSourceFSAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mock := &MockSourceFSAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
