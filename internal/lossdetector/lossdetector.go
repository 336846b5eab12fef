// Package lossdetector implements the time-threshold loss-detection rule
// described in spec §4.1 (the RFC 9002 §6 time-threshold rule with a fixed
// time factor), grounded in the teacher's sentPacketHandler.detectLostPackets
// (ackhandler/sent_packet_handler.go in the wider pack) and in
// original_source/demo/congestioncontrol.hpp's DefaultLossDetectionAlgo.
package lossdetector

import (
	"github.com/sirupsen/logrus"

	"github.com/warpmatrix/ccdemo/internal/cclog"
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"
	"github.com/warpmatrix/ccdemo/internal/congestion"
)

var log = cclog.New("lossdetector")

// timeFactor is the 9/4 multiplier applied to max_rtt (1 + 5/4, matching
// the original source's `maxrtt + maxrtt*(5.0/4.0)`).
const timeFactor = 9.0 / 4.0

// minLossDelay lower-bounds loss_delay so a zero or near-zero RTT sample
// never makes every in-flight packet instantly "lost".
var minLossDelay = cctime.FromMicroseconds(1)

// Detector is the stateless loss-detection entry point. It carries no
// per-connection state; a single Detector value may be shared by any number
// of sessions.
type Detector struct{}

// New returns a Detector. There is nothing to configure: LossDetector is
// stateless per call (spec §3 "Lifecycle").
func New() Detector { return Detector{} }

// DetectLoss implements spec §4.1's detect_loss contract. ack and
// maxAckedSeq are accepted to match the consumed-interface shape but the
// canonical algorithm (and every concrete scenario in spec §8) depends only
// on inflight, now and rttStats; ack/maxAckedSeq are reserved for senders
// that want to bound the scan to packets at or below the highest acked
// sequence number (the teacher's sentPacketHandler does this as an
// optimization, not a behavior change).
func (Detector) DetectLoss(
	inflight ccpacket.InflightPacketMap,
	now cctime.Timepoint,
	ack ccpacket.AckEvent,
	maxAckedSeq ccpacket.Seq,
	rttStats congestion.RttStats,
) ccpacket.LossEvent {
	maxRTT := cctime.Max(rttStats.PreviousSRTT(), rttStats.LatestRTT())
	if maxRTT.IsZero() {
		maxRTT = rttStats.SmoothedOrInitialRTT()
	}
	lossDelay := cctime.Max(maxRTT.Scale(timeFactor), minLossDelay)

	log.WithFields(logrus.Fields{
		"max_rtt":    maxRTT.Microseconds(),
		"loss_delay": lossDelay.Microseconds(),
	}).Trace("computed loss delay")

	var lost []ccpacket.InflightPacket
	inflight.Range(func(seq ccpacket.Seq, pkt ccpacket.InflightPacket) bool {
		deadline := pkt.SentAt.Add(lossDelay)
		if deadline.AtOrBefore(now) {
			lost = append(lost, pkt)
		}
		return true
	})

	event := ccpacket.LossEvent{LostPackets: lost}
	if len(lost) > 0 {
		event.Valid = true
		event.LostAt = now
		log.WithField("count", len(lost)).Debug("detected lost packets")
	}
	return event
}
