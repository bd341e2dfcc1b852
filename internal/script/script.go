// Package script replays recorded input against the simulator without a
// terminal. A script is a YAML list of key transitions pinned to ticks.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/armsim/internal/core/sim"
)

var (
	ErrInvalidScript = errors.New("invalid script")
	ErrNoTicks       = errors.New("script must run at least one tick")
)

// Script is the decoded document.
type Script struct {
	Name  string `yaml:"name"`
	Ticks uint64 `yaml:"ticks"`
	Steps []Step `yaml:"events"`
}

// Step is one transition applied just before tick At. Exactly one action
// field is set.
type Step struct {
	At         uint64   `yaml:"at"`
	Press      string   `yaml:"press,omitempty"`
	Release    string   `yaml:"release,omitempty"`
	Wrist      *float64 `yaml:"wrist,omitempty"`
	NudgeWrist *float64 `yaml:"nudge_wrist,omitempty"`
}

func (s Step) event() (sim.InputEvent, error) {
	set := 0
	var ev sim.InputEvent
	if s.Press != "" {
		k, err := sim.ParseKey(s.Press)
		if err != nil {
			return ev, err
		}
		ev, set = sim.Press(k), set+1
	}
	if s.Release != "" {
		k, err := sim.ParseKey(s.Release)
		if err != nil {
			return ev, err
		}
		ev, set = sim.Release(k), set+1
	}
	if s.Wrist != nil {
		ev, set = sim.SetWrist(*s.Wrist), set+1
	}
	if s.NudgeWrist != nil {
		ev, set = sim.NudgeWrist(*s.NudgeWrist), set+1
	}
	if set != 1 {
		return ev, fmt.Errorf("step at %d has %d actions, want 1", s.At, set)
	}
	return ev, nil
}

func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func (s *Script) Validate() error {
	if s.Ticks == 0 {
		return ErrNoTicks
	}
	for i, st := range s.Steps {
		if st.At == 0 || st.At > s.Ticks {
			return fmt.Errorf("%w: event %d at tick %d outside 1..%d", ErrInvalidScript, i, st.At, s.Ticks)
		}
		if _, err := st.event(); err != nil {
			return fmt.Errorf("%w: event %d: %w", ErrInvalidScript, i, err)
		}
	}
	return nil
}

// Player feeds a script to the loop. It implements host.Source.
type Player struct {
	byTick map[uint64][]sim.InputEvent
	ticks  uint64
}

func NewPlayer(s *Script) (*Player, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	steps := append([]Step(nil), s.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	p := &Player{byTick: make(map[uint64][]sim.InputEvent), ticks: s.Ticks}
	for _, st := range steps {
		ev, _ := st.event()
		p.byTick[st.At] = append(p.byTick[st.At], ev)
	}
	return p, nil
}

// Ticks is how long the script runs.
func (p *Player) Ticks() uint64 {
	return p.ticks
}

func (p *Player) Poll(tick uint64) []sim.InputEvent {
	return p.byTick[tick]
}
