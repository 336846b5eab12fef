package main

import (
	"github.com/warpmatrix/ccdemo/internal/cctime"
)

// simpleRTTStats is a minimal RttStats implementation for the demo harness.
// The real RTT-statistics provider is explicitly out of scope for the
// congestion-control core (spec §1); this is just enough to drive the core
// from a scripted sequence of samples.
type simpleRTTStats struct {
	latest       cctime.Duration
	previousSRTT cctime.Duration
	smoothed     cctime.Duration
	initial      cctime.Duration
}

func newSimpleRTTStats(initial cctime.Duration) *simpleRTTStats {
	return &simpleRTTStats{
		latest:       initial,
		previousSRTT: initial,
		smoothed:     initial,
		initial:      initial,
	}
}

func (s *simpleRTTStats) LatestRTT() cctime.Duration    { return s.latest }
func (s *simpleRTTStats) PreviousSRTT() cctime.Duration { return s.previousSRTT }
func (s *simpleRTTStats) SmoothedRTT() cctime.Duration  { return s.smoothed }
func (s *simpleRTTStats) SmoothedOrInitialRTT() cctime.Duration {
	if s.smoothed.IsZero() {
		return s.initial
	}
	return s.smoothed
}

// UpdateSample feeds a new RTT sample, following the classic RFC 6298 EWMA
// used to smooth latest into smoothed/previousSRTT.
func (s *simpleRTTStats) UpdateSample(sample cctime.Duration) {
	s.previousSRTT = s.smoothed
	s.latest = sample
	if s.smoothed.IsZero() {
		s.smoothed = sample
		return
	}
	const alpha = 0.125
	s.smoothed = s.smoothed.Scale(1 - alpha).Add(sample.Scale(alpha))
}
