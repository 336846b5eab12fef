// Package congestion implements the congestion-control core: the
// CongestionController contract and its two concrete algorithms,
// RenoController and ProbingController. The package never performs I/O and
// never reads the clock itself; every timing value arrives through RttStats
// or through the packets it is handed.
package congestion

import (
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"
)

// InflightPacket, AckEvent and LossEvent are re-exported from ccpacket so
// that callers of this package never need to import ccpacket directly.
type (
	InflightPacket = ccpacket.InflightPacket
	AckEvent       = ccpacket.AckEvent
	LossEvent      = ccpacket.LossEvent
)

// RttStats is the RTT-statistics provider consumed by the core. The
// concrete implementation (smoothing, min-RTT tracking, etc.) lives outside
// the core; only this read interface is part of the congestion-control
// surface.
type RttStats interface {
	LatestRTT() cctime.Duration
	PreviousSRTT() cctime.Duration
	SmoothedRTT() cctime.Duration
	SmoothedOrInitialRTT() cctime.Duration
}

// Clock is the monotonic clock consumed by the core's callers. The core
// never calls Now() itself; every "now" value it sees is passed in by the
// caller.
type Clock interface {
	Now() cctime.Timepoint
}

// CCType identifies which concrete algorithm a CongestionController
// implements.
type CCType uint8

const (
	// CCNone is the null controller: no congestion control is applied.
	CCNone CCType = iota
	// CCReno is the classic slow-start + congestion-avoidance algorithm.
	CCReno
	// CCProbing is the bandwidth-and-delay probing algorithm.
	CCProbing
)

// String implements fmt.Stringer.
func (t CCType) String() string {
	switch t {
	case CCReno:
		return "reno"
	case CCProbing:
		return "probing"
	default:
		return "none"
	}
}

// Controller is the uniform contract the sender drives every controller
// through (spec §4.2). It is a closed family of two variants (Reno,
// Probing); new algorithms are added by extending CCType and the dispatch
// site, not by opening the interface to arbitrary implementers.
type Controller interface {
	// CCType reports which algorithm this controller implements.
	CCType() CCType

	// OnSent is invoked exactly once per transmission, before the packet
	// is handed to the network. It may annotate pkt with controller state.
	OnSent(pkt *InflightPacket)

	// OnAckOrLoss is invoked once per ack-or-loss event. Implementations
	// must dispatch loss before ack, so ack-side updates observe the
	// post-loss inflight count.
	OnAckOrLoss(ack AckEvent, loss LossEvent, rtt RttStats)

	// GetCWND returns the maximum number of packets the sender may keep
	// in flight.
	GetCWND() uint32
}

// SendBatcher is the optional extension implemented only by ProbingController.
type SendBatcher interface {
	// GetSendBatch returns the number of packets the sender should
	// release immediately as one burst; zero means "wait for the next
	// ack before sending more".
	GetSendBatch() uint32

	// SetWait is an advisory signal the sender sets when it has
	// deliberately paused sending.
	SetWait(flag bool)
}
