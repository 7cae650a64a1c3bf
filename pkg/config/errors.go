package config

import "errors"

var (
	ErrInvalidFile  = errors.New("config: invalid config file")
	ErrEmptyPrefix  = errors.New("config: env prefix cannot be empty")
	ErrNilStruct    = errors.New("config: bind target cannot be nil")
	ErrNotSupported = errors.New("config: unsupported value type")
)
