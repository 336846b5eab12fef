package congestion

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/warpmatrix/ccdemo/internal/cclog"
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"
)

// RenoController implements the classic slow-start + congestion-avoidance
// algorithm described in spec §4.3, grounded in the teacher's cubicSender
// reno path (congestion/cubic_sender.go) and in
// original_source/demo/congestioncontrol.hpp's RenoCongestionContrl.
type RenoController struct {
	log *logrus.Entry

	cwnd     uint32
	cwndCnt  uint32
	ssThresh uint32
	minCwnd  uint32
	maxCwnd  uint32

	// pktWndAtSend is purely diagnostic (spec §9): the CWND recorded at
	// send time for every still-outstanding piece, read back on loss for
	// debugging only; the loss-burst filter does not consult it. An
	// implementation may drop this entirely with diagnostics disabled.
	pktWndAtSend map[ccpacket.PieceID]uint32

	// lastLargestLossSentAt backs the unreachable lostCheckRecovery helper
	// (see SUPPLEMENTED FEATURES #3 in SPEC_FULL.md): kept for fidelity to
	// the original source, never consulted by OnAckOrLoss.
	lastLargestLossSentAt cctime.Timepoint
}

var _ Controller = (*RenoController)(nil)

// NewRenoController constructs a RenoController from a RenoConfig,
// applying spec §4.3's defaults for any zero field.
func NewRenoController(cfg RenoConfig) *RenoController {
	if cfg.MinCwnd == 0 {
		cfg.MinCwnd = 1
	}
	if cfg.MaxCwnd == 0 {
		cfg.MaxCwnd = 64
	}
	if cfg.SSThresh == 0 {
		cfg.SSThresh = 32
	}
	r := &RenoController{
		log:          cclog.New("reno"),
		cwnd:         1,
		ssThresh:     cfg.SSThresh,
		minCwnd:      cfg.MinCwnd,
		maxCwnd:      cfg.MaxCwnd,
		pktWndAtSend: make(map[ccpacket.PieceID]uint32),
	}
	r.cwnd = r.boundCwnd(r.cwnd)
	r.log.WithFields(logrus.Fields{
		"min_cwnd":  r.minCwnd,
		"max_cwnd":  r.maxCwnd,
		"ss_thresh": r.ssThresh,
	}).Debug("reno controller created")
	return r
}

// CCType implements Controller.
func (r *RenoController) CCType() CCType { return CCReno }

// OnSent implements Controller. It records the CWND in effect at send time
// in the diagnostic pktWndAtSend map.
func (r *RenoController) OnSent(pkt *InflightPacket) {
	r.pktWndAtSend[pkt.PieceID] = r.cwnd
	r.log.WithField("piece_id", pkt.PieceID).Trace("on sent")
}

// OnAckOrLoss implements Controller. Loss is always dispatched before ack,
// matching spec §4.2's ordering requirement.
func (r *RenoController) OnAckOrLoss(ack AckEvent, loss LossEvent, rtt RttStats) {
	r.log.WithFields(logrus.Fields{
		"ack_valid":  ack.Valid,
		"loss_valid": loss.Valid,
	}).Trace("on ack or loss")
	if loss.Valid {
		r.onLoss(loss)
	}
	if ack.Valid {
		r.onAck(ack)
	}
}

func (r *RenoController) inSlowStart() bool {
	return r.cwnd < r.ssThresh
}

func (r *RenoController) exitSlowStart() {
	r.ssThresh = r.cwnd
}

func (r *RenoController) onAck(ack AckEvent) {
	if r.inSlowStart() {
		r.cwnd++
		if r.cwnd >= r.ssThresh {
			r.exitSlowStart()
		}
	} else {
		r.cwndCnt++
		inc := r.cwndCnt / r.cwnd
		if r.cwndCnt >= r.cwnd {
			r.cwndCnt = 0
		}
		r.cwnd += inc
	}
	r.cwnd = r.boundCwnd(r.cwnd)
	delete(r.pktWndAtSend, ack.Packet.PieceID)
	r.log.WithField("cwnd", r.cwnd).Debug("after ack")
}

// lossBurstThreshold is max(ceil(cwnd*0.01), 3): the loss-burst filter from
// spec §4.3. Small loss bursts below this count are treated as random loss
// and ignored entirely.
func (r *RenoController) lossBurstThreshold() int {
	scaled := int(math.Ceil(float64(r.cwnd) * 0.01))
	if scaled < 3 {
		return 3
	}
	return scaled
}

func (r *RenoController) onLoss(loss LossEvent) {
	maxSentAt := cctime.ZeroTime()
	var maxWndAtSend uint32
	for _, pkt := range loss.LostPackets {
		if maxSentAt.Before(pkt.SentAt) {
			maxSentAt = pkt.SentAt
		}
		if w := r.pktWndAtSend[pkt.PieceID]; w > maxWndAtSend {
			maxWndAtSend = w
		}
		delete(r.pktWndAtSend, pkt.PieceID)
	}
	_ = maxWndAtSend // diagnostic only, per spec §4.3/§9

	if loss.Count() < r.lossBurstThreshold() {
		r.log.WithField("count", loss.Count()).Debug("loss burst below threshold, ignored as random loss")
		return
	}

	r.lastLargestLossSentAt = maxSentAt
	if r.inSlowStart() {
		r.cwnd = r.cwnd / 2
		r.cwnd = r.boundCwnd(r.cwnd)
	} else {
		r.cwnd = r.cwnd / 2
		r.cwnd = r.boundCwnd(r.cwnd)
		r.ssThresh = r.cwnd
	}
	r.log.WithField("cwnd", r.cwnd).Debug("after loss")
}

// lostCheckRecovery mirrors the original source's LostCheckRecovery helper.
// Its call site is intentionally never reached (spec §9's Open Questions:
// "do not reintroduce recovery unless intentionally redesigning"); kept for
// fidelity with the original, not dead weight to be deleted on sight.
func (r *RenoController) lostCheckRecovery(largestLostSentAt cctime.Timepoint) bool {
	const recoveryGrace = 10 // milliseconds, matching the original's Duration::FromMilliseconds(10)
	if r.lastLargestLossSentAt.IsUninitialized() {
		return false
	}
	grace := cctime.FromMilliseconds(recoveryGrace)
	candidate := largestLostSentAt.Add(grace)
	// recovery iff candidate > lastLargestLossSentAt
	return !candidate.AtOrBefore(r.lastLargestLossSentAt)
}

func (r *RenoController) boundCwnd(cwnd uint32) uint32 {
	if cwnd < r.minCwnd {
		return r.minCwnd
	}
	if cwnd > r.maxCwnd {
		return r.maxCwnd
	}
	return cwnd
}

// GetCWND implements Controller.
func (r *RenoController) GetCWND() uint32 {
	return r.cwnd
}
