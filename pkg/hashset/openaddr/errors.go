package openaddr

import "github.com/pkg/errors"

var (
	ErrInvalidCapacity   = errors.New("openaddr: capacity must be positive")
	ErrInvalidLoadFactor = errors.New("openaddr: load factor must be between 0 and 1")
	ErrEmptyInput        = errors.New("openaddr: empty input provided")
)
