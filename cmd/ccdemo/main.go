// Command ccdemo is a tiny driver that wires a fake sender loop around the
// congestion-control core so the core can be exercised manually. It is not
// part of the core itself; the real sender loop (wire format, retransmission
// scheduling, reliability) is explicitly out of scope for this module
// (spec §1).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/warpmatrix/ccdemo"
	"github.com/warpmatrix/ccdemo/internal/ccpacket"
	"github.com/warpmatrix/ccdemo/internal/cctime"
	"github.com/warpmatrix/ccdemo/internal/congestion"
	"github.com/warpmatrix/ccdemo/internal/idgen"
	"github.com/warpmatrix/ccdemo/internal/lossdetector"
)

func main() {
	algo := flag.String("algo", "reno", "congestion algorithm: reno or probing")
	rounds := flag.Int("rounds", 20, "number of ack rounds to simulate")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	session := ccdemo.DefaultSession()
	session.Algorithm = ccdemo.Algorithm(*algo)
	controller, err := session.NewController()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ccdemo:", err)
		os.Exit(1)
	}

	rtt := newSimpleRTTStats(cctime.FromMilliseconds(20))
	detector := lossdetector.New()
	inflight := ccpacket.InflightPackets{}

	clock := wallClock{}
	now := clock.Now()
	group := idgen.NewGroupID()

	var seq ccpacket.Seq
	for round := 0; round < *rounds; round++ {
		batch := uint32(1)
		if batcher, ok := controller.(congestion.SendBatcher); ok {
			if b := batcher.GetSendBatch(); b > 0 {
				batch = b
			}
		}

		for i := uint32(0); i < batch; i++ {
			seq++
			pkt := ccpacket.InflightPacket{
				Packet: ccpacket.Packet{
					Seq:     seq,
					PieceID: ccpacket.PieceID(seq),
					GroupID: group,
					SentAt:  now,
				},
			}
			controller.OnSent(&pkt)
			inflight[seq] = pkt
		}

		now = now.Add(rtt.LatestRTT())
		var acked ccpacket.InflightPacket
		for s, pkt := range inflight {
			acked = pkt
			delete(inflight, s)
			break
		}

		ack := ccpacket.AckEvent{
			Valid:      true,
			Packet:     acked,
			SentAt:     acked.SentAt,
			ReceivedAt: now,
		}
		loss := detector.DetectLoss(inflight, now, ack, seq, rtt)
		for _, lp := range loss.LostPackets {
			delete(inflight, lp.Seq)
		}

		controller.OnAckOrLoss(ack, loss, rtt)

		fmt.Printf("round=%d cwnd=%d inflight=%d\n", round, controller.GetCWND(), inflight.Len())
	}
}
