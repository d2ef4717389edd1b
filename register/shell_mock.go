// Copyright 2025 Sonic Labs
// This file is part of Montecarlo, a Monte Carlo experiment suite for Sonic
//
// Montecarlo is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Montecarlo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Montecarlo. If not, see <http://www.gnu.org/licenses/>.

// Package register is a generated GoMock package.
package register

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockShellExecutor is a mock of ShellExecutor interface.
type MockShellExecutor struct {
	ctrl     *gomock.Controller
	recorder *MockShellExecutorMockRecorder
	isgomock struct{}
}

// MockShellExecutorMockRecorder is the mock recorder for MockShellExecutor.
type MockShellExecutorMockRecorder struct {
	mock *MockShellExecutor
}

// NewMockShellExecutor creates a new mock instance.
func NewMockShellExecutor(ctrl *gomock.Controller) *MockShellExecutor {
	mock := &MockShellExecutor{ctrl: ctrl}
	mock.recorder = &MockShellExecutorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockShellExecutor) EXPECT() *MockShellExecutorMockRecorder {
	return m.recorder
}

// Command mocks base method.
func (m *MockShellExecutor) Command(name string, arg ...string) ([]byte, error) {
	m.ctrl.T.Helper()
	varargs := []any{name}
	for _, a := range arg {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Command", varargs...)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Command indicates an expected call of Command.
func (mr *MockShellExecutorMockRecorder) Command(name any, arg ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{name}, arg...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Command", reflect.TypeOf((*MockShellExecutor)(nil).Command), varargs...)
}
