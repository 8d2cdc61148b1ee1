package season

import (
	"fmt"

	"github.com/WylieMabel/TreesAndThat/grid"
)

// Event a season transition
type Event int

const (
	NoEvent Event = iota
	CaniculaStart
	CaniculaEnd
)

func (e Event) String() string {
	switch e {
	case NoEvent:
		return "none"
	case CaniculaStart:
		return "canicula-start"
	case CaniculaEnd:
		return "canicula-end"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Phase position of the year relative to the canicula
type Phase int

const (
	PreCanicula Phase = iota
	InCanicula
	PostCanicula
)

func (p Phase) String() string {
	switch p {
	case PreCanicula:
		return "pre-canicula"
	case InCanicula:
		return "in-canicula"
	case PostCanicula:
		return "post-canicula"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Scheduler decides the regime of each day and fires each transition once per year
type Scheduler struct {
	cfg            Config
	phase          Phase
	started, ended bool
}

// NewScheduler validates the configuration
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg}, nil
}

// Config returns the seasonal configuration
func (s *Scheduler) Config() Config { return s.cfg }

// BeginYear rearms both transitions
func (s *Scheduler) BeginYear() {
	s.phase, s.started, s.ended = PreCanicula, false, false
}

// Regime active precipitation regime of a day
func (s *Scheduler) Regime(julian int) Regime { return s.cfg.Regime(julian) }

// Phase current phase of the year
func (s *Scheduler) Phase() Phase { return s.phase }

// Dispatch returns the transition falling on julian, if it has not yet fired this year
func (s *Scheduler) Dispatch(julian int) Event {
	switch {
	case julian == s.cfg.CaniculaStart && !s.started:
		s.started, s.phase = true, InCanicula
		return CaniculaStart
	case julian == s.cfg.CaniculaEnd && !s.ended:
		s.ended, s.phase = true, PostCanicula
		return CaniculaEnd
	}
	return NoEvent
}

// Pending returns, in order, the transitions that have not fired this year
// and marks them fired. Julian days never visited by the clock, and a
// canicula ending on day 365, leave transitions pending at year end.
func (s *Scheduler) Pending() []Event {
	var o []Event
	if !s.started {
		s.started, s.phase = true, InCanicula
		o = append(o, CaniculaStart)
	}
	if !s.ended {
		s.ended, s.phase = true, PostCanicula
		o = append(o, CaniculaEnd)
	}
	return o
}

// FunctionalTypes returns the plant functional type of every plot after
// event e: cover crop on adopting plots and bare soil elsewhere through the
// canicula, grass for the growing season.
func FunctionalTypes(e Event, mask []bool) []int {
	o := make([]int, len(mask))
	for i, wsa := range mask {
		switch {
		case e != CaniculaStart:
			o[i] = grid.Grass
		case wsa:
			o[i] = grid.CoverCrop
		default:
			o[i] = grid.Bare
		}
	}
	return o
}
