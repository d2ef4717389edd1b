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

// Package resultdb is a generated GoMock package.
package resultdb

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockRunDB is a mock of RunDB interface.
type MockRunDB struct {
	ctrl     *gomock.Controller
	recorder *MockRunDBMockRecorder
	isgomock struct{}
}

// MockRunDBMockRecorder is the mock recorder for MockRunDB.
type MockRunDBMockRecorder struct {
	mock *MockRunDB
}

// NewMockRunDB creates a new mock instance.
func NewMockRunDB(ctrl *gomock.Controller) *MockRunDB {
	mock := &MockRunDB{ctrl: ctrl}
	mock.recorder = &MockRunDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRunDB) EXPECT() *MockRunDBMockRecorder {
	return m.recorder
}

// Add mocks base method.
func (m *MockRunDB) Add(record RunRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Add", record)
	ret0, _ := ret[0].(error)
	return ret0
}

// Add indicates an expected call of Add.
func (mr *MockRunDBMockRecorder) Add(record any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Add", reflect.TypeOf((*MockRunDB)(nil).Add), record)
}

// Close mocks base method.
func (m *MockRunDB) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockRunDBMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockRunDB)(nil).Close))
}

// DeleteByRunId mocks base method.
func (m *MockRunDB) DeleteByRunId(runId string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteByRunId", runId)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteByRunId indicates an expected call of DeleteByRunId.
func (mr *MockRunDBMockRecorder) DeleteByRunId(runId any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteByRunId", reflect.TypeOf((*MockRunDB)(nil).DeleteByRunId), runId)
}

// Flush mocks base method.
func (m *MockRunDB) Flush() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Flush")
	ret0, _ := ret[0].(error)
	return ret0
}

// Flush indicates an expected call of Flush.
func (mr *MockRunDBMockRecorder) Flush() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockRunDB)(nil).Flush))
}
