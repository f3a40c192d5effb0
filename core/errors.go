package core

import "errors"

// Input range errors reported by Neuron.Validate
var (
	ErrValueOutOfRange  = errors.New("input value out of range")
	ErrWeightOutOfRange = errors.New("input weight out of range")
)
