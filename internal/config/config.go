package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/pinsim/internal/pin"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInterval   = pin.DefaultInterval
	DefaultInitial    = "high"
	DefaultTheme      = "cyberpunk"
	DefaultScrollStep = 22
	DefaultDataDir    = ".pinsim"
	DefaultLogLevel   = "info"
)

type Config struct {
	Interval   time.Duration `yaml:"interval"`
	Initial    string        `yaml:"initial"`
	Theme      string        `yaml:"theme"`
	ScrollStep int           `yaml:"scroll_step"`
	DataDir    string        `yaml:"data_dir"`
	Log        LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Interval:   DefaultInterval,
		Initial:    DefaultInitial,
		Theme:      DefaultTheme,
		ScrollStep: DefaultScrollStep,
		DataDir:    DefaultDataDir,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Pretty: true,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ReadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile overlays the fields present in a YAML file onto c.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads .env if present and overrides fields from PINSIM_*
// variables. Unparseable values are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("PINSIM_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PINSIM_INTERVAL: %w", err)
		}
		c.Interval = d
	}
	if v := os.Getenv("PINSIM_INITIAL"); v != "" {
		c.Initial = v
	}
	if v := os.Getenv("PINSIM_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("PINSIM_DATA"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PINSIM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidInterval, c.Interval)
	}
	if _, err := pin.ParseLevel(c.Initial); err != nil {
		return err
	}
	if c.ScrollStep <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidScrollStep, c.ScrollStep)
	}
	return nil
}

// InitialLevel parses Initial, falling back to high when it is empty.
func (c *Config) InitialLevel() (pin.Level, error) {
	if c.Initial == "" {
		return pin.High, nil
	}
	return pin.ParseLevel(c.Initial)
}

// SimulatorOptions translates the config into pin options.
func (c *Config) SimulatorOptions() ([]pin.Option, error) {
	level, err := c.InitialLevel()
	if err != nil {
		return nil, err
	}
	return []pin.Option{
		pin.WithInterval(c.Interval),
		pin.WithInitialLevel(level),
	}, nil
}
