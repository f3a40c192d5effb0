package runtime

import "errors"

// Engine errors
var (
	ErrInvalidTicks = errors.New("ticks must be positive")
	ErrUnknownUnit  = errors.New("unknown unit")
	ErrMetrics      = errors.New("metrics registration failed")
)
