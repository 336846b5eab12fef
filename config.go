// Package ccdemo wires the congestion-control core together with a small
// demo sender harness. Session is the top-level YAML-loadable configuration
// document, following distribution-distribution's configuration.Configuration
// convention (yaml tags, Default* helpers, loaded with gopkg.in/yaml.v2).
package ccdemo

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/warpmatrix/ccdemo/internal/congestion"
)

// Algorithm selects which CongestionController a Session should construct.
type Algorithm string

const (
	AlgorithmReno    Algorithm = "reno"
	AlgorithmProbing Algorithm = "probing"
)

// Session is the configuration for one congestion-controlled demo run.
type Session struct {
	Algorithm Algorithm `yaml:"algorithm"`

	Reno    congestion.RenoConfig    `yaml:"reno,omitempty"`
	Probing congestion.ProbingConfig `yaml:"probing,omitempty"`
}

// DefaultSession returns a Session configured for Reno with the spec's
// default RenoConfig.
func DefaultSession() Session {
	return Session{
		Algorithm: AlgorithmReno,
		Reno:      congestion.DefaultRenoConfig(),
		Probing:   congestion.DefaultProbingConfig(),
	}
}

// LoadSession reads a Session document from r.
func LoadSession(r io.Reader) (Session, error) {
	var s Session
	data, err := io.ReadAll(r)
	if err != nil {
		return Session{}, fmt.Errorf("ccdemo: reading session config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("ccdemo: parsing session config: %w", err)
	}
	return s, nil
}

// NewController constructs the Controller named by s.Algorithm. This is the
// module's one dispatch site for the closed {Reno, Probing} family (spec §9
// "Polymorphism"); adding a third algorithm means extending this switch and
// congestion.CCType, not opening Controller to arbitrary implementers.
func (s Session) NewController() (congestion.Controller, error) {
	switch s.Algorithm {
	case AlgorithmReno, "":
		return congestion.NewRenoController(s.Reno), nil
	case AlgorithmProbing:
		return congestion.NewProbingController(s.Probing), nil
	default:
		return nil, fmt.Errorf("ccdemo: unknown congestion algorithm %q", s.Algorithm)
	}
}
