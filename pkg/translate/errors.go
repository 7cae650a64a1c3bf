package translate

import "errors"

var (
	ErrEmptyLanguage = errors.New("translate: language cannot be empty")
	ErrNilPluralRule = errors.New("translate: plural rule cannot be nil")
	ErrInvalidFile   = errors.New("translate: invalid definition file")
)
