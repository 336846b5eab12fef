// Package ccmocks holds hand-maintained mocks for the congestion-control
// core's consumed interfaces (RttStats, Clock), in the same golang/mock
// style the teacher checks in under internal/mocks/ackhandler -- a
// MockGen-shaped type kept by hand rather than regenerated by go:generate.
package ccmocks

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	"github.com/warpmatrix/ccdemo/internal/cctime"
	"github.com/warpmatrix/ccdemo/internal/congestion"
)

// MockRttStats is a mock of the congestion.RttStats interface.
type MockRttStats struct {
	ctrl     *gomock.Controller
	recorder *MockRttStatsMockRecorder
}

// MockRttStatsMockRecorder is the mock recorder for MockRttStats.
type MockRttStatsMockRecorder struct {
	mock *MockRttStats
}

// NewMockRttStats creates a new mock instance.
func NewMockRttStats(ctrl *gomock.Controller) *MockRttStats {
	mock := &MockRttStats{ctrl: ctrl}
	mock.recorder = &MockRttStatsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRttStats) EXPECT() *MockRttStatsMockRecorder {
	return m.recorder
}

// LatestRTT mocks base method.
func (m *MockRttStats) LatestRTT() cctime.Duration {
	ret := m.ctrl.Call(m, "LatestRTT")
	ret0, _ := ret[0].(cctime.Duration)
	return ret0
}

// LatestRTT indicates an expected call of LatestRTT.
func (mr *MockRttStatsMockRecorder) LatestRTT() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LatestRTT", reflect.TypeOf((*MockRttStats)(nil).LatestRTT))
}

// PreviousSRTT mocks base method.
func (m *MockRttStats) PreviousSRTT() cctime.Duration {
	ret := m.ctrl.Call(m, "PreviousSRTT")
	ret0, _ := ret[0].(cctime.Duration)
	return ret0
}

// PreviousSRTT indicates an expected call of PreviousSRTT.
func (mr *MockRttStatsMockRecorder) PreviousSRTT() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PreviousSRTT", reflect.TypeOf((*MockRttStats)(nil).PreviousSRTT))
}

// SmoothedRTT mocks base method.
func (m *MockRttStats) SmoothedRTT() cctime.Duration {
	ret := m.ctrl.Call(m, "SmoothedRTT")
	ret0, _ := ret[0].(cctime.Duration)
	return ret0
}

// SmoothedRTT indicates an expected call of SmoothedRTT.
func (mr *MockRttStatsMockRecorder) SmoothedRTT() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SmoothedRTT", reflect.TypeOf((*MockRttStats)(nil).SmoothedRTT))
}

// SmoothedOrInitialRTT mocks base method.
func (m *MockRttStats) SmoothedOrInitialRTT() cctime.Duration {
	ret := m.ctrl.Call(m, "SmoothedOrInitialRTT")
	ret0, _ := ret[0].(cctime.Duration)
	return ret0
}

// SmoothedOrInitialRTT indicates an expected call of SmoothedOrInitialRTT.
func (mr *MockRttStatsMockRecorder) SmoothedOrInitialRTT() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SmoothedOrInitialRTT", reflect.TypeOf((*MockRttStats)(nil).SmoothedOrInitialRTT))
}

var _ congestion.RttStats = (*MockRttStats)(nil)

// MockClock is a mock of the congestion.Clock interface.
type MockClock struct {
	ctrl     *gomock.Controller
	recorder *MockClockMockRecorder
}

// MockClockMockRecorder is the mock recorder for MockClock.
type MockClockMockRecorder struct {
	mock *MockClock
}

// NewMockClock creates a new mock instance.
func NewMockClock(ctrl *gomock.Controller) *MockClock {
	mock := &MockClock{ctrl: ctrl}
	mock.recorder = &MockClockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClock) EXPECT() *MockClockMockRecorder {
	return m.recorder
}

// Now mocks base method.
func (m *MockClock) Now() cctime.Timepoint {
	ret := m.ctrl.Call(m, "Now")
	ret0, _ := ret[0].(cctime.Timepoint)
	return ret0
}

// Now indicates an expected call of Now.
func (mr *MockClockMockRecorder) Now() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Now", reflect.TypeOf((*MockClock)(nil).Now))
}

var _ congestion.Clock = (*MockClock)(nil)
