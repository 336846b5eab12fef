// Package ccmetrics exposes the probing controller's internal estimators as
// Prometheus gauges, grounded in runZeroInc-sockstats's pattern of
// exporting per-connection TCPInfo fields (cwnd, rtt, bandwidth) as
// gauges keyed by connection id. The congestion-control core itself never
// imports this package: it is wired up by a sender/demo harness that wants
// observability, keeping the core free of telemetry side effects (spec §5:
// the core exposes no interior mutability, and performs no I/O of its own).
package ccmetrics

import "github.com/prometheus/client_golang/prometheus"

// Exporter holds the gauges for one congestion-controlled session.
type Exporter struct {
	Cwnd     prometheus.Gauge
	BtlBw    prometheus.Gauge
	RTPropMs prometheus.Gauge
	Inflight prometheus.Gauge
}

// NewExporter creates and registers a new Exporter against reg, labeling
// every gauge with the given session id (mirroring sockstats's per-socket
// id label).
func NewExporter(reg prometheus.Registerer, sessionID string) *Exporter {
	labels := prometheus.Labels{"session_id": sessionID}

	e := &Exporter{
		Cwnd: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ccdemo",
			Subsystem:   "congestion",
			Name:        "cwnd_packets",
			Help:        "Current congestion window, in packets.",
			ConstLabels: labels,
		}),
		BtlBw: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ccdemo",
			Subsystem:   "congestion",
			Name:        "btl_bw_packets_per_ms",
			Help:        "Bottleneck bandwidth estimate, in packets per millisecond.",
			ConstLabels: labels,
		}),
		RTPropMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ccdemo",
			Subsystem:   "congestion",
			Name:        "rt_prop_ms",
			Help:        "Minimum observed RTT, in milliseconds.",
			ConstLabels: labels,
		}),
		Inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ccdemo",
			Subsystem:   "congestion",
			Name:        "inflight_packets",
			Help:        "Number of packets currently in flight.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(e.Cwnd, e.BtlBw, e.RTPropMs, e.Inflight)
	return e
}
