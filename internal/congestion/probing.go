package congestion

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/warpmatrix/ccdemo/internal/cclog"
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"
)

// bwSmoothingAlpha is the EMA factor applied to the inter-arrival duration
// estimator (spec §4.4.1).
const bwSmoothingAlpha = 0.1

// burstSendThresholdMicros is the inter-send duration, in microseconds, below
// which two packets are considered to have been sent as one burst (spec
// §4.4.1): their arrival spacing is then assumed to reflect the bottleneck.
const burstSendThresholdMicros = 200

// bootstrapBDP is the fixed bootstrap bandwidth-delay-product used while
// rt_prop is still infinite (spec §4.4, "8-10 packets").
const bootstrapBDP = 10

// fixedIntervalSettingMs backs GetBatchSizeFixedInterval, the BBR-variant
// capability kept from original_source/demo/congestioncontrol.hpp
// (`intervalSetting{ 20 }`), see SPEC_FULL.md SUPPLEMENTED FEATURES #1.
const fixedIntervalSettingMs = 20

// Phase is the probing controller's externally observable phase: startup,
// steady, probe-up and drain. There is no separate probe-down state; the
// single-tick drain after a probe-up plays that role. It replaces the original source's floating
// point identity comparison on cwnd_gain (spec §9's design note) with an
// explicit enum; the decision of when to transition is unchanged.
type Phase uint8

const (
	PhaseStartup Phase = iota
	PhaseSteady
	PhaseProbeUp
	PhaseDrain
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseSteady:
		return "steady"
	case PhaseProbeUp:
		return "probe_up"
	case PhaseDrain:
		return "drain"
	default:
		return "startup"
	}
}

// ProbingController implements the bandwidth-and-delay probing algorithm of
// spec §4.4, grounded in original_source/demo/congestioncontrol.hpp's
// BBRCongestionControl and in the bbr.go reference implementation kept in
// the retrieval pack (internal/quantum/bbr), translated to the spec's
// canonical "Ours" pacing formulas rather than that reference's own CWND
// shortcuts.
type ProbingController struct {
	log *logrus.Entry

	cfg ProbingConfig

	rtProp cctime.Duration
	btlBw  float64 // packets per millisecond

	avgRecvDur     cctime.Duration
	haveAvgRecvDur bool
	lastRecvAt     cctime.Timepoint
	haveLastRecv   bool
	lastSentAt     cctime.Timepoint

	lastDeflateGroup ccpacket.GroupID
	haveDeflateGroup bool
	nextDeflateAt    cctime.Timepoint
	haveNextDeflate  bool

	sendW   uint32
	recvW   uint32
	recvNum uint32

	isStartup bool
	phase     Phase
	cwndGain  float64
	ticNum    uint32

	inflight  int64
	delivered uint64

	isWait bool
}

var _ Controller = (*ProbingController)(nil)
var _ SendBatcher = (*ProbingController)(nil)

// NewProbingController constructs a ProbingController from a ProbingConfig,
// applying spec §6's typical defaults when fields are left zero.
func NewProbingController(cfg ProbingConfig) *ProbingController {
	if cfg.Period == 0 {
		cfg.Period = 8
	}
	if cfg.PeakGain == 0 {
		cfg.PeakGain = 0.25
	}
	p := &ProbingController{
		log:       cclog.New("probing"),
		cfg:       cfg,
		rtProp:    cctime.Infinite(),
		recvW:     1,
		isStartup: true,
		phase:     PhaseStartup,
		cwndGain:  1.0,
	}
	p.log.WithFields(logrus.Fields{
		"period":    cfg.Period,
		"peak_gain": cfg.PeakGain,
	}).Debug("probing controller created")
	return p
}

// CCType implements Controller.
func (p *ProbingController) CCType() CCType { return CCProbing }

// OnSent implements Controller.
func (p *ProbingController) OnSent(pkt *InflightPacket) {
	pkt.DeliveredAtSend = p.delivered
	pkt.NeedsWait = p.isWait
	p.inflight++

	if p.sendW > 0 {
		p.sendW--
	}

	if !p.isStartup {
		p.advanceGainCycle()
	}
	p.log.WithFields(logrus.Fields{
		"send_w": p.sendW,
		"phase":  p.phase.String(),
	}).Trace("on sent")
}

func (p *ProbingController) advanceGainCycle() {
	if p.ticNum > 0 {
		p.ticNum--
	}
	if p.ticNum != 0 {
		return
	}
	switch p.phase {
	case PhaseSteady:
		p.cwndGain = 1 + p.cfg.PeakGain
		p.ticNum = p.GetCWND()
		p.phase = PhaseProbeUp
	case PhaseProbeUp:
		p.cwndGain = 1.0
		p.ticNum = 1
		p.phase = PhaseDrain
	case PhaseDrain:
		p.cwndGain = 1.0
		p.ticNum = p.GetCWND()
		p.phase = PhaseSteady
	}
	p.log.WithFields(logrus.Fields{
		"phase":     p.phase.String(),
		"cwnd_gain": p.cwndGain,
	}).Debug("gain cycle advanced")
}

// OnAckOrLoss implements Controller. Loss is dispatched before ack.
func (p *ProbingController) OnAckOrLoss(ack AckEvent, loss LossEvent, rtt RttStats) {
	if loss.Valid {
		p.onLoss(loss)
	}
	if ack.Valid {
		p.onAck(ack, rtt)
	}
}

func (p *ProbingController) onLoss(loss LossEvent) {
	n := int64(loss.Count())
	p.inflight -= n
	if p.inflight < 0 {
		p.inflight = 0
	}

	if p.cfg.LossBandwidthCutEnabled {
		if loss.Count() > 3 {
			p.btlBw *= 0.5
		} else {
			p.btlBw *= 0.9
		}
	}

	cwnd := p.GetCWND()
	if uint64(p.inflight) < uint64(cwnd) {
		p.recvNum = 0
		free := cwnd - uint32(p.inflight)
		burst := minU32(free, uint32(n))
		burst = minU32(burst, 8)
		p.sendW = burst
	}
	p.log.WithFields(logrus.Fields{
		"lost":     loss.Count(),
		"inflight": p.inflight,
		"send_w":   p.sendW,
	}).Debug("on loss")
}

func (p *ProbingController) onAck(ack AckEvent, rtt RttStats) {
	p.rtProp = cctime.Min(p.rtProp, rtt.LatestRTT())
	p.updateBandwidth(ack)
	p.maybeDeflate(ack, rtt)

	p.delivered++
	if p.inflight > 0 {
		p.inflight--
	}

	p.recvNum++
	if p.isStartup {
		p.onAckStartup()
	} else {
		p.onAckSteady()
	}

	p.log.WithFields(logrus.Fields{
		"rt_prop_us": p.rtProp.Microseconds(),
		"btl_bw":     p.btlBw,
		"recv_w":     p.recvW,
		"send_w":     p.sendW,
		"recv_num":   p.recvNum,
		"cwnd":       p.GetCWND(),
		"phase":      p.phase.String(),
	}).Trace("on ack")
}

// updateBandwidth maintains the EWMA inter-arrival estimator of spec
// §4.4.1.
func (p *ProbingController) updateBandwidth(ack AckEvent) {
	defer func() {
		p.lastRecvAt = ack.ReceivedAt
		p.haveLastRecv = true
		p.lastSentAt = ack.Packet.SentAt
	}()

	if !p.haveLastRecv {
		return
	}

	interArrival := ack.ReceivedAt.Sub(p.lastRecvAt)
	interSend := ack.Packet.SentAt.Sub(p.lastSentAt)
	if interSend.Microseconds() > burstSendThresholdMicros {
		return
	}

	if !p.haveAvgRecvDur {
		p.avgRecvDur = interArrival
		p.haveAvgRecvDur = true
	} else {
		blended := float64(p.avgRecvDur.Microseconds())*(1-bwSmoothingAlpha) +
			float64(interArrival.Microseconds())*bwSmoothingAlpha
		p.avgRecvDur = cctime.FromMicroseconds(int64(blended))
	}

	if us := p.avgRecvDur.Microseconds(); us > 0 {
		p.btlBw = 1000.0 / float64(us)
	}
}

// maybeDeflate implements the RTT-spike deflation rule of spec §4.4.1.
func (p *ProbingController) maybeDeflate(ack AckEvent, rtt RttStats) {
	if p.btlBw <= 0 || p.rtProp.IsInfinite() {
		return
	}

	extraMicros := int64((2.0 / p.btlBw) * 1000.0)
	threshold := p.rtProp.Add(cctime.FromMicroseconds(extraMicros))

	groupChanged := !p.haveDeflateGroup || ack.Packet.GroupID != p.lastDeflateGroup
	dueForDeflate := !p.haveNextDeflate || p.nextDeflateAt.AtOrBefore(ack.ReceivedAt)

	if rtt.SmoothedRTT().ToDuration() > threshold.ToDuration() && groupChanged && dueForDeflate {
		p.btlBw *= 0.9
		p.lastDeflateGroup = ack.Packet.GroupID
		p.haveDeflateGroup = true
		p.nextDeflateAt = ack.ReceivedAt.Add(p.rtProp)
		p.haveNextDeflate = true
		p.log.WithField("btl_bw", p.btlBw).Debug("deflated bandwidth estimate on RTT spike")
	}
}

func (p *ProbingController) onAckStartup() {
	if p.recvW == 0 || p.recvNum == 0 || p.recvNum%p.recvW != 0 {
		return
	}
	p.sendW = minU32(p.recvW*2, 8)

	if p.recvNum+p.recvW > p.cfg.Period && p.recvW <= p.cfg.Period {
		p.recvW++
		p.recvNum = 0
	}

	if p.recvW > p.cfg.Period {
		p.recvW = p.cfg.Period
		cwnd := p.GetCWND()
		free := subU32(cwnd, p.sendW)
		if uint64(p.inflight) >= uint64(free) {
			p.isStartup = false
			p.phase = PhaseSteady
			p.cwndGain = 1.0
			p.ticNum = cwnd
			p.log.Debug("startup complete, entering steady phase")
		}
	}
}

func (p *ProbingController) onAckSteady() {
	if p.recvNum != p.recvW {
		return
	}
	p.recvNum = 0
	cwnd := p.GetCWND()

	var free uint32
	if uint64(p.inflight) < uint64(cwnd) {
		free = cwnd - uint32(p.inflight)
	}

	limit := minU32(p.recvW, cwnd/4)
	if free < limit {
		p.sendW = 0
		p.recvW = minU32(4, cwnd/4)
		p.recvNum = free
	} else {
		p.sendW = minU32(minU32(2*p.recvW, 8), free)
		p.recvW = minU32(p.recvW, cwnd/2)
	}
}

// GetCWND implements Controller. bdp is derived purely from rt_prop and
// btl_bw (spec §4.4); cwnd_gain, tracked by the send-side gain cycle, is
// deliberately not folded into this formula (it only feeds
// GetBatchSizeFixedInterval, the BBR-variant capability).
func (p *ProbingController) GetCWND() uint32 {
	var bdp uint32
	if p.rtProp.IsInfinite() {
		bdp = bootstrapBDP
	} else {
		rtPropMs := float64(p.rtProp.Microseconds()) / 1000.0
		bdpFloat := math.Floor(rtPropMs * p.btlBw)
		if bdpFloat < 1 {
			bdpFloat = 1
		}
		bdp = uint32(bdpFloat)
	}
	return bdp + minU32(p.recvW, bdp/4)
}

// GetSendBatch implements SendBatcher.
func (p *ProbingController) GetSendBatch() uint32 { return p.sendW }

// SetWait implements SendBatcher.
func (p *ProbingController) SetWait(flag bool) { p.isWait = flag }

// GetBatchSizeFixedInterval is the BBR-variant batch-sizing capability kept
// from original_source/demo/congestioncontrol.hpp's GetBatchSize (spec §9:
// "the BBR variant's separate get_batch_size() using a fixed
// interval_setting = 20 ms is retained as an optional capability"). It is
// not used by the canonical pacing path.
func (p *ProbingController) GetBatchSizeFixedInterval() uint32 {
	if p.rtProp.IsInfinite() {
		return bootstrapBDP
	}
	detectBw := p.cwndGain * p.btlBw
	bdp := 2 * float64(fixedIntervalSettingMs) * detectBw
	if bdp < 1 {
		bdp = 1
	}
	return uint32(bdp)
}

// CurrentPhase returns the controller's current externally observable phase.
func (p *ProbingController) CurrentPhase() Phase { return p.phase }

// RTProp returns the current minimum observed RTT, for diagnostics/metrics.
func (p *ProbingController) RTProp() cctime.Duration { return p.rtProp }

// BtlBw returns the current bottleneck bandwidth estimate in packets per
// millisecond, for diagnostics/metrics.
func (p *ProbingController) BtlBw() float64 { return p.btlBw }

// Inflight returns the current number of outstanding packets.
func (p *ProbingController) Inflight() uint32 {
	if p.inflight < 0 {
		return 0
	}
	return uint32(p.inflight)
}

// LastDeflateGroup returns the last group id a bandwidth deflation fired on
// (SPEC_FULL.md SUPPLEMENTED FEATURES #4).
func (p *ProbingController) LastDeflateGroup() (ccpacket.GroupID, bool) {
	return p.lastDeflateGroup, p.haveDeflateGroup
}

// NextDeflateAt returns the next Timepoint at which a deflation is eligible
// to fire (SPEC_FULL.md SUPPLEMENTED FEATURES #4).
func (p *ProbingController) NextDeflateAt() (cctime.Timepoint, bool) {
	return p.nextDeflateAt, p.haveNextDeflate
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func subU32(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
