package model

import "errors"

// Circuit validation errors
var (
	ErrInvalidCircuit = errors.New("invalid circuit")
	ErrEmptyCircuit   = errors.New("circuit has no units")
	ErrDuplicateName  = errors.New("duplicate unit name")
	ErrUnknownSource  = errors.New("unknown synapse source")
)
