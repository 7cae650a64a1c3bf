package format

import "errors"

var (
	ErrNilLocale       = errors.New("format: locale cannot be nil")
	ErrNilTranslator   = errors.New("format: translator cannot be nil")
	ErrInvalidUserList = errors.New("format: user list cap must be positive")
)
