// Package session holds the interaction state of the two-screen flow and its
// pure transition function.
package session

import "slurpwiki/internal/pipeline"

type Screen int

const (
	Results Screen = iota
	Detail
)

func (s Screen) String() string {
	if s == Detail {
		return "detail"
	}
	return "results"
}

// State is the whole interaction state. Results survive a detail view so
// going back does not require re-processing.
type State struct {
	// Run produced Results. Last is the most recent run, which differs from
	// Run after a run without matches.
	Run      *pipeline.Run
	Last     *pipeline.Run
	Results  []pipeline.Match
	Selected string
	Notice   string
}

func (s State) Screen() Screen {
	if s.Selected != "" {
		return Detail
	}
	return Results
}

type Action interface {
	apply(State) State
}

// RunCompleted finishes a processing run. The selection is always cleared.
// A run without matches keeps the previous results and reports its notice.
type RunCompleted struct {
	Run *pipeline.Run
}

// Inspect selects an entity and shows its statements.
type Inspect struct {
	ID string
}

// Back returns to the results screen.
type Back struct{}

func (a RunCompleted) apply(s State) State {
	s.Selected = ""
	s.Notice = ""
	if a.Run == nil {
		return s
	}
	s.Last = a.Run
	s.Notice = a.Run.Notice
	if len(a.Run.Matches) > 0 {
		s.Run = a.Run
		s.Results = a.Run.Matches
	}
	return s
}

func (a Inspect) apply(s State) State {
	if a.ID == "" {
		return s
	}
	s.Selected = a.ID
	s.Notice = ""
	return s
}

func (Back) apply(s State) State {
	s.Selected = ""
	s.Notice = ""
	return s
}

// Reduce returns the state that follows s after a.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}
