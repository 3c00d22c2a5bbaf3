package config

import "errors"

var (
	ErrInvalidWindow     = errors.New("config: invalid time window")
	ErrInvalidSampleRate = errors.New("config: sample rate must be at least 1")
	ErrInvalidRange      = errors.New("config: invalid value range")
	ErrInvalidCapacity   = errors.New("config: max selected must be at least 1")
	ErrUnknownPreset     = errors.New("config: unknown preset")
)
