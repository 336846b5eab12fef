// Package ccpacket defines the packet-identity and event types shared
// between the sender's registry and the congestion-control core: Packet,
// InflightPacket, AckEvent and LossEvent. None of these types perform I/O;
// they are plain value types annotated by the controllers in congestion.
package ccpacket

import "github.com/warpmatrix/ccdemo/internal/cctime"

// Seq is a monotonically increasing packet sequence number.
type Seq uint64

// PieceID identifies an application-level piece of data.
type PieceID uint64

// GroupID identifies a batch of packets released together by the sender.
type GroupID uint64

// Packet is the immutable identity of a sent packet.
type Packet struct {
	Seq     Seq
	PieceID PieceID
	GroupID GroupID
	SentAt  cctime.Timepoint
}

// InflightPacket is the mutable per-packet bookkeeping the sender carries
// for every packet that has been sent but neither acknowledged nor declared
// lost. Controllers annotate it in OnSent.
type InflightPacket struct {
	Packet

	// DeliveredAtSend is a snapshot of the controller's delivered counter
	// at the moment this packet was handed to OnSent. Never exceeds the
	// controller's current Delivered count.
	DeliveredAtSend uint64

	// NeedsWait is an advisory hint set by ProbingController when the
	// packet was sent during a deliberate wait phase. It has no effect on
	// CWND computation; it exists purely for sender-side diagnostics.
	NeedsWait bool
}

// AckEvent carries the metadata for a single acknowledged packet. Because
// acks arrive one packet at a time, exactly one piece is represented.
type AckEvent struct {
	Valid bool

	Packet InflightPacket

	SentAt     cctime.Timepoint
	LostAt     cctime.Timepoint
	ReceivedAt cctime.Timepoint

	// IsLastInGroup marks the final ack of a GroupID batch. The controllers
	// do not read it; ProbingController bounds bandwidth deflation by
	// GroupID changes instead.
	IsLastInGroup bool
}

// LossEvent carries zero or more packets the LossDetector (or a controller's
// own bookkeeping) has classified as lost.
type LossEvent struct {
	Valid       bool
	LostPackets []InflightPacket
	LostAt      cctime.Timepoint
}

// Count returns the number of packets carried by the loss event.
func (e LossEvent) Count() int {
	if !e.Valid {
		return 0
	}
	return len(e.LostPackets)
}

// InflightPacketMap is the read-only view the LossDetector iterates: every
// packet sent but not yet acked or lost, keyed by sequence number. The
// sender owns the concrete map and is responsible for mutating it; the core
// never writes to it.
type InflightPacketMap interface {
	// Range calls fn for every in-flight packet. Iteration order is
	// unspecified; callers must not assume sorted output.
	Range(fn func(seq Seq, pkt InflightPacket) bool)
	// Len returns the number of packets currently tracked.
	Len() int
}

// InflightPackets is a simple map-backed InflightPacketMap, suitable for the
// demo harness and for tests.
type InflightPackets map[Seq]InflightPacket

// Range implements InflightPacketMap.
func (m InflightPackets) Range(fn func(seq Seq, pkt InflightPacket) bool) {
	for seq, pkt := range m {
		if !fn(seq, pkt) {
			return
		}
	}
}

// Len implements InflightPacketMap.
func (m InflightPackets) Len() int { return len(m) }
