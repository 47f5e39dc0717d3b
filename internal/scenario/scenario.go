package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors
var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownTab      = errors.New("unknown tab reference")
)

// Scenario is a replayable sequence of tab-strip events loaded from YAML.
// Tabs are referred to by the handle given in their open step.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action. The populated field decides what the
// runner does.
type Step struct {
	Open  *OpenStep  `yaml:"open,omitempty"`
	Close *CloseStep `yaml:"close,omitempty"`
	Pin   *RefStep   `yaml:"pin,omitempty"`
	Unpin *RefStep   `yaml:"unpin,omitempty"`
	Move  *MoveStep  `yaml:"move,omitempty"`
}

// OpenStep opens a tab. Index is the target flat position; when omitted
// the tab is appended to its region. Opener names the handle of the tab
// that spawned this one.
type OpenStep struct {
	Tab    string `yaml:"tab"`
	Title  string `yaml:"title"`
	URL    string `yaml:"url"`
	Index  *int   `yaml:"index"`
	Opener string `yaml:"opener"`
	Pinned bool   `yaml:"pinned"`
	Group  string `yaml:"group"`
}

// CloseStep closes a tab, either by handle or by flat index.
type CloseStep struct {
	Tab   string `yaml:"tab"`
	Index *int   `yaml:"index"`
}

// RefStep names a tab by handle.
type RefStep struct {
	Tab string `yaml:"tab"`
}

// MoveStep relocates tabs by flat index.
type MoveStep struct {
	Indices     []int  `yaml:"indices"`
	Destination int    `yaml:"destination"`
	Group       string `yaml:"group"`
	Pinned      bool   `yaml:"pinned"`
	RetainTypes bool   `yaml:"retain_types"`
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

func (s *Scenario) validate() error {
	handles := make(map[string]bool)
	for i, step := range s.Steps {
		actions := 0
		if step.Open != nil {
			actions++
		}
		if step.Close != nil {
			actions++
		}
		if step.Pin != nil {
			actions++
		}
		if step.Unpin != nil {
			actions++
		}
		if step.Move != nil {
			actions++
		}
		if actions != 1 {
			return fmt.Errorf("step %d: %w: want exactly one action, got %d", i+1, ErrInvalidScenario, actions)
		}

		switch {
		case step.Open != nil:
			if step.Open.Tab == "" {
				return fmt.Errorf("step %d: %w: open step needs a tab handle", i+1, ErrInvalidScenario)
			}
			if handles[step.Open.Tab] {
				return fmt.Errorf("step %d: %w: duplicate tab handle %q", i+1, ErrInvalidScenario, step.Open.Tab)
			}
			handles[step.Open.Tab] = true
		case step.Close != nil:
			if step.Close.Tab == "" && step.Close.Index == nil {
				return fmt.Errorf("step %d: %w: close step needs a tab handle or index", i+1, ErrInvalidScenario)
			}
		case step.Pin != nil && step.Pin.Tab == "":
			return fmt.Errorf("step %d: %w: pin step needs a tab handle", i+1, ErrInvalidScenario)
		case step.Unpin != nil && step.Unpin.Tab == "":
			return fmt.Errorf("step %d: %w: unpin step needs a tab handle", i+1, ErrInvalidScenario)
		}
	}
	return nil
}
