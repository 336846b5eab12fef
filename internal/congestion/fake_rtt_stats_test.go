package congestion

import "github.com/warpmatrix/ccdemo/internal/cctime"

// fakeRTTStats is a plain value-struct fake, in the style of the pack's
// mockClock test fixtures, rather than a full gomock expectation set --
// this package's tests only ever need fixed return values.
type fakeRTTStats struct {
	latest       cctime.Duration
	previousSRTT cctime.Duration
	smoothed     cctime.Duration
	initial      cctime.Duration
}

func (f fakeRTTStats) LatestRTT() cctime.Duration    { return f.latest }
func (f fakeRTTStats) PreviousSRTT() cctime.Duration { return f.previousSRTT }
func (f fakeRTTStats) SmoothedRTT() cctime.Duration  { return f.smoothed }
func (f fakeRTTStats) SmoothedOrInitialRTT() cctime.Duration {
	if f.initial.IsZero() {
		return f.smoothed
	}
	return f.initial
}
