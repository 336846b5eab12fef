package lossdetector

import (
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

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

var _ = Describe("Detector", func() {
	var d Detector

	BeforeEach(func() {
		d = New()
	})

	It("declares a packet lost once sent_at + loss_delay has elapsed, and not before", func() {
		rtt := fakeRTTStats{
			latest:       cctime.FromMilliseconds(40),
			previousSRTT: cctime.FromMilliseconds(40),
		}
		now := cctime.ZeroTime().Add(cctime.FromMilliseconds(100))

		inflight := ccpacket.InflightPackets{
			1: {Packet: ccpacket.Packet{Seq: 1, SentAt: cctime.ZeroTime().Add(cctime.FromMilliseconds(5))}},
			2: {Packet: ccpacket.Packet{Seq: 2, SentAt: cctime.ZeroTime().Add(cctime.FromMilliseconds(15))}},
		}

		event := d.DetectLoss(inflight, now, ccpacket.AckEvent{}, 2, rtt)

		Expect(event.Valid).To(BeTrue())
		Expect(event.LostAt).To(Equal(now))
		Expect(event.LostPackets).To(HaveLen(1))
		Expect(event.LostPackets[0].Seq).To(BeEquivalentTo(1))
	})

	It("returns an invalid event when the inflight map is empty", func() {
		rtt := fakeRTTStats{latest: cctime.FromMilliseconds(40), previousSRTT: cctime.FromMilliseconds(40)}
		event := d.DetectLoss(ccpacket.InflightPackets{}, cctime.ZeroTime(), ccpacket.AckEvent{}, 0, rtt)
		Expect(event.Valid).To(BeFalse())
		Expect(event.LostPackets).To(BeEmpty())
	})

	It("falls back to smoothed_or_initial_rtt when both latest and previous srtt are zero", func() {
		rtt := fakeRTTStats{initial: cctime.FromMilliseconds(10)}
		now := cctime.ZeroTime().Add(cctime.FromMilliseconds(23))
		inflight := ccpacket.InflightPackets{
			1: {Packet: ccpacket.Packet{Seq: 1, SentAt: cctime.ZeroTime()}},
		}
		// loss_delay = 10ms * 9/4 = 22.5ms; sent at 0, now at 23ms -> lost.
		event := d.DetectLoss(inflight, now, ccpacket.AckEvent{}, 1, rtt)
		Expect(event.Valid).To(BeTrue())
		Expect(event.LostPackets).To(HaveLen(1))
	})

	It("only ever reports packets whose deadline has actually elapsed", func() {
		rtt := fakeRTTStats{latest: cctime.FromMilliseconds(10), previousSRTT: cctime.FromMilliseconds(10)}
		now := cctime.ZeroTime().Add(cctime.FromMilliseconds(50))
		lossDelay := cctime.FromMilliseconds(10).Scale(9.0 / 4.0)

		inflight := ccpacket.InflightPackets{}
		for i := 0; i < 10; i++ {
			sentAt := cctime.ZeroTime().Add(cctime.FromMilliseconds(int64(i * 5)))
			inflight[ccpacket.Seq(i)] = ccpacket.InflightPacket{Packet: ccpacket.Packet{Seq: ccpacket.Seq(i), SentAt: sentAt}}
		}

		event := d.DetectLoss(inflight, now, ccpacket.AckEvent{}, 9, rtt)
		for _, pkt := range event.LostPackets {
			deadline := pkt.SentAt.Add(lossDelay)
			Expect(deadline.AtOrBefore(now)).To(BeTrue())
		}
		for seq, pkt := range inflight {
			deadline := pkt.SentAt.Add(lossDelay)
			wasReported := false
			for _, lp := range event.LostPackets {
				if lp.Seq == seq {
					wasReported = true
				}
			}
			if !deadline.AtOrBefore(now) {
				Expect(wasReported).To(BeFalse())
			}
		}
	})
})
