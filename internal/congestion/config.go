package congestion

// RenoConfig configures a RenoController (spec §6). Fields carry yaml tags
// so a session's configuration document can embed it directly, following
// distribution-distribution's configuration.Configuration convention of
// yaml-tagged, omitempty struct fields with a Default*Config constructor.
type RenoConfig struct {
	MinCwnd  uint32 `yaml:"min_cwnd,omitempty"`
	MaxCwnd  uint32 `yaml:"max_cwnd,omitempty"`
	SSThresh uint32 `yaml:"ss_thresh,omitempty"`
}

// DefaultRenoConfig returns the spec's default Reno configuration.
func DefaultRenoConfig() RenoConfig {
	return RenoConfig{
		MinCwnd:  1,
		MaxCwnd:  64,
		SSThresh: 32,
	}
}

// ProbingConfig configures a ProbingController (spec §6). Typical values:
// Period in [4, 16], PeakGain in [0.1, 0.5].
type ProbingConfig struct {
	Period   uint32  `yaml:"period,omitempty"`
	PeakGain float64 `yaml:"peak_gain,omitempty"`

	// LossBandwidthCutEnabled opts into the historical variant kept in
	// original_source/demo/congestioncontrol.hpp, which scales btl_bw down
	// proportional to the loss-burst size instead of leaving it untouched.
	// Default false preserves the canonical spec §4.4.6 behavior.
	LossBandwidthCutEnabled bool `yaml:"loss_bandwidth_cut_enabled,omitempty"`
}

// DefaultProbingConfig returns a typical Probing configuration.
func DefaultProbingConfig() ProbingConfig {
	return ProbingConfig{
		Period:   8,
		PeakGain: 0.25,
	}
}
