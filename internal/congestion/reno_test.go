package congestion

import (
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ackFor(seq ccpacket.Seq) AckEvent {
	return AckEvent{
		Valid: true,
		Packet: InflightPacket{
			Packet: ccpacket.Packet{Seq: seq, PieceID: ccpacket.PieceID(seq)},
		},
	}
}

func lossFor(rtt RttStats, sentAts ...cctime.Timepoint) LossEvent {
	pkts := make([]InflightPacket, 0, len(sentAts))
	for i, at := range sentAts {
		pkts = append(pkts, InflightPacket{
			Packet: ccpacket.Packet{Seq: ccpacket.Seq(i + 1), PieceID: ccpacket.PieceID(i + 1), SentAt: at},
		})
	}
	return LossEvent{Valid: len(pkts) > 0, LostPackets: pkts}
}

var _ = Describe("RenoController", func() {
	var rtt fakeRTTStats

	BeforeEach(func() {
		rtt = fakeRTTStats{latest: cctime.FromMilliseconds(20)}
	})

	It("grows additively in slow start then by one segment per RTT in congestion avoidance", func() {
		r := NewRenoController(RenoConfig{MinCwnd: 1, MaxCwnd: 64, SSThresh: 4})
		Expect(r.GetCWND()).To(BeEquivalentTo(1))

		var seq ccpacket.Seq
		nextAck := func() AckEvent {
			seq++
			return ackFor(seq)
		}

		// Slow start: cwnd climbs 1->2->3->4, exiting slow start once
		// cwnd reaches ss_thresh (spec §4.3, §8 scenario 1).
		r.OnAckOrLoss(nextAck(), LossEvent{}, rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(2))
		r.OnAckOrLoss(nextAck(), LossEvent{}, rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(3))
		r.OnAckOrLoss(nextAck(), LossEvent{}, rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(4))
		Expect(r.ssThresh).To(BeEquivalentTo(4))
		Expect(r.inSlowStart()).To(BeFalse())

		// Congestion avoidance: cwnd_cnt accumulates 1,2,3,4 across four
		// more acks, incrementing cwnd by exactly one segment per RTT.
		for i := 0; i < 3; i++ {
			r.OnAckOrLoss(nextAck(), LossEvent{}, rtt)
			Expect(r.GetCWND()).To(BeEquivalentTo(4))
		}
		r.OnAckOrLoss(nextAck(), LossEvent{}, rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(5))
	})

	It("ignores loss bursts below the threshold and halves cwnd above it", func() {
		r := NewRenoController(RenoConfig{MinCwnd: 1, MaxCwnd: 64, SSThresh: 1})

		var seq ccpacket.Seq
		for r.GetCWND() < 50 {
			seq++
			r.OnAckOrLoss(ackFor(seq), LossEvent{}, rtt)
		}
		Expect(r.GetCWND()).To(BeEquivalentTo(50))

		// max(ceil(50*0.01), 3) == 3: a 2-packet loss burst is random
		// loss and must be ignored entirely.
		r.OnAckOrLoss(AckEvent{}, lossFor(rtt, cctime.ZeroTime(), cctime.ZeroTime()), rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(50))

		// A 3-packet burst meets the threshold and halves cwnd.
		r.OnAckOrLoss(AckEvent{}, lossFor(rtt, cctime.ZeroTime(), cctime.ZeroTime(), cctime.ZeroTime()), rtt)
		Expect(r.GetCWND()).To(BeEquivalentTo(25))
		Expect(r.ssThresh).To(BeEquivalentTo(25))
	})

	It("keeps cwnd within [min_cwnd, max_cwnd] across any sequence of events", func() {
		r := NewRenoController(RenoConfig{MinCwnd: 2, MaxCwnd: 8, SSThresh: 4})
		var seq ccpacket.Seq
		for i := 0; i < 40; i++ {
			seq++
			r.OnAckOrLoss(ackFor(seq), LossEvent{}, rtt)
			Expect(r.GetCWND()).To(BeNumerically(">=", 2))
			Expect(r.GetCWND()).To(BeNumerically("<=", 8))
		}
		loss := lossFor(rtt, cctime.ZeroTime(), cctime.ZeroTime(), cctime.ZeroTime())
		r.OnAckOrLoss(AckEvent{}, loss, rtt)
		Expect(r.GetCWND()).To(BeNumerically(">=", 2))
		Expect(r.GetCWND()).To(BeNumerically("<=", 8))
	})

	It("treats an empty ack and empty loss event as a no-op", func() {
		r := NewRenoController(DefaultRenoConfig())
		before := r.GetCWND()
		r.OnAckOrLoss(AckEvent{}, LossEvent{}, rtt)
		Expect(r.GetCWND()).To(Equal(before))
	})
})
