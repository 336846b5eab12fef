// Package cclog wires the congestion-control core's trace/debug telemetry
// (spec §6: "telemetry is emitted through a logging facility at trace/debug
// levels only") through logrus. It mirrors the teacher's utils.Debugf /
// utils.Errorf global-level helpers, but the teacher's hand-rolled
// fmt.Fprintf shim is replaced with the structured logger the rest of the
// pack reaches for (runZeroInc-sockstats, distribution-distribution).
package cclog

import "github.com/sirupsen/logrus"

// New returns a component-scoped logger, analogous to how the teacher
// threads a single *RTTStats pointer into every congestion sender: callers
// construct one Entry per controller instance and keep it for the life of
// the session.
func New(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

// SetLevel adjusts the global logrus level. The core itself never calls
// this; it exists for the demo harness (cmd/ccdemo) to dial verbosity up
// when reproducing a scenario.
func SetLevel(level logrus.Level) {
	logrus.SetLevel(level)
}
