package intro

import (
	"errors"
	"fmt"
	"time"
)

// Stage is a discrete phase of the intro gating which overlay content is
// visible. Stages only ever advance.
type Stage int

const (
	StageRain       Stage = iota // binary rain only
	StageTitle                   // title and "INITIALIZING..."
	StageEvents                  // event names
	StageFinalTitle              // closing caption
	StageHold                    // everything shown, waiting for completion
)

func (s Stage) String() string {
	switch s {
	case StageRain:
		return "rain"
	case StageTitle:
		return "title"
	case StageEvents:
		return "events"
	case StageFinalTitle:
		return "final-title"
	case StageHold:
		return "hold"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Schedule holds the frame thresholds of the intro. A threshold is crossed
// once the number of frames drawn exceeds it.
type Schedule struct {
	Title      int           `yaml:"title"`
	Events     int           `yaml:"events"`
	FinalTitle int           `yaml:"final_title"`
	Hold       int           `yaml:"hold"`
	Complete   int           `yaml:"complete"`
	FadeOut    time.Duration `yaml:"fade_out"`

	// Decorative layers switch on after these frames.
	Grid      int `yaml:"grid"`
	Circuits  int `yaml:"circuits"`
	Pulses    int `yaml:"pulses"`
	HexGrid   int `yaml:"hex_grid"`
	Streams   int `yaml:"streams"`
	TechChars int `yaml:"tech_chars"`
}

func DefaultSchedule() Schedule {
	return Schedule{
		Title:      100,
		Events:     150,
		FinalTitle: 200,
		Hold:       250,
		Complete:   300,
		FadeOut:    time.Second,

		Grid:      20,
		Circuits:  40,
		Pulses:    60,
		HexGrid:   80,
		Streams:   100,
		TechChars: 80,
	}
}

var ErrInvalidSchedule = errors.New("invalid intro schedule")

// Validate requires non-negative thresholds with the stage thresholds
// strictly increasing.
func (s Schedule) Validate() error {
	stages := []struct {
		name string
		v    int
	}{
		{"title", s.Title},
		{"events", s.Events},
		{"final_title", s.FinalTitle},
		{"hold", s.Hold},
		{"complete", s.Complete},
	}
	prev := -1
	for _, st := range stages {
		if st.v <= prev {
			return fmt.Errorf("%w: %s threshold %d must exceed %d", ErrInvalidSchedule, st.name, st.v, prev)
		}
		prev = st.v
	}
	for _, v := range []int{s.Grid, s.Circuits, s.Pulses, s.HexGrid, s.Streams, s.TechChars} {
		if v < 0 {
			return fmt.Errorf("%w: negative layer threshold %d", ErrInvalidSchedule, v)
		}
	}
	if s.FadeOut < 0 {
		return fmt.Errorf("%w: negative fade out %s", ErrInvalidSchedule, s.FadeOut)
	}
	return nil
}

type stageStep struct {
	after int
	to    Stage
}

// steps lists the stage transitions in order; the stage index selects the
// next step to test.
func (s Schedule) steps() []stageStep {
	return []stageStep{
		{after: s.Title, to: StageTitle},
		{after: s.Events, to: StageEvents},
		{after: s.FinalTitle, to: StageFinalTitle},
		{after: s.Hold, to: StageHold},
	}
}
