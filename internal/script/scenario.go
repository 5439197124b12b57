package script

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a named, reusable script stored as YAML:
//
//	name: blink-twice
//	interval: 250ms
//	initial: low
//	steps:
//	  - play
//	  - wait 2
//	  - reset
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Interval    time.Duration `yaml:"interval"`
	Initial     string        `yaml:"initial"`
	Steps       []string      `yaml:"steps"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Source joins the steps into one script.
func (s *Scenario) Source() string {
	return strings.Join(s.Steps, "; ")
}

// Commands parses every step.
func (s *Scenario) Commands() ([]Command, error) {
	cmds, err := Parse(s.Source())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return cmds, nil
}
