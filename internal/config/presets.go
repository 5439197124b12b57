package config

import (
	"fmt"
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"blink": {
		Interval: 500 * time.Millisecond, Initial: "high", Theme: "cyberpunk",
	},
	"fast": {
		Interval: 100 * time.Millisecond, Initial: "high", Theme: "retro",
	},
	"slow": {
		Interval: time.Second, Initial: "low", Theme: "ocean",
	},
	"dark": {
		Interval: 500 * time.Millisecond, Initial: "low", Theme: "minimal",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the preset's simulator fields onto c, leaving storage
// and logging settings alone.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Interval = p.Interval
	c.Initial = p.Initial
	if p.Theme != "" {
		c.Theme = p.Theme
	}
	return nil
}
