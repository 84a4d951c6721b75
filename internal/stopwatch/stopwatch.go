// SPDX-License-Identifier: MIT
//
// Package stopwatch times named phases of a protocol run and logs each
// transition, modeled on utils.h's start_measure/stop_measure/print_total
// macro trio: every phase is tagged online or offline (network-bound versus
// local computation) so a caller can report "total" and "total online"
// separately.
package stopwatch

import (
	"time"

	"github.com/rs/zerolog"
)

// Phase flags classify a measured span as contributing to online time,
// offline time, or both.
type Phase int

const (
	Offline Phase = 1 << iota
	Online
)

// Stopwatch accumulates named phase durations and logs each one as it ends.
type Stopwatch struct {
	log zerolog.Logger

	name  string
	phase Phase
	start time.Time

	totalOnline  time.Duration
	totalOffline time.Duration
}

// New returns a Stopwatch that logs phase transitions to log.
func New(log zerolog.Logger) *Stopwatch {
	return &Stopwatch{log: log}
}

// Start begins timing a new phase, first closing out whichever phase was
// previously running.
func (s *Stopwatch) Start(name string, phase Phase) {
	s.Stop()
	s.name = name
	s.phase = phase
	s.start = time.Now()
}

// Stop ends the current phase, if any, logging its duration.
func (s *Stopwatch) Stop() {
	if s.name == "" {
		return
	}

	elapsed := time.Since(s.start)
	if s.phase&Online != 0 {
		s.totalOnline += elapsed
	}
	if s.phase&Offline != 0 {
		s.totalOffline += elapsed
	}

	s.log.Debug().Str("phase", s.name).Dur("elapsed", elapsed).Msg("phase complete")
	s.name = ""
}

// Total logs the accumulated duration across the phases selected by which.
func (s *Stopwatch) Total(label string, which Phase) {
	var total time.Duration
	if which&Online != 0 {
		total += s.totalOnline
	}
	if which&Offline != 0 {
		total += s.totalOffline
	}
	s.log.Info().Str("label", label).Dur("total", total).Msg("timing summary")
}
