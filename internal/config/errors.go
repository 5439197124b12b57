package config

import "errors"

var (
	ErrInvalidInterval   = errors.New("config: interval must be positive")
	ErrInvalidScrollStep = errors.New("config: scroll_step must be positive")
	ErrUnknownPreset     = errors.New("config: unknown preset")
)
