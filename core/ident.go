package core

import "sync/atomic"

// Identifier is a unique, non-negative unit id. Ids are assigned once at
// construction and never reused.
type Identifier uint64

// Allocator hands out ascending identifiers starting at 0. It is safe for
// concurrent use.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator returns an allocator whose first id is 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns the next identifier.
func (a *Allocator) Next() Identifier {
	return Identifier(a.next.Add(1) - 1)
}

// Peek returns the identifier the next call to Next will return.
func (a *Allocator) Peek() Identifier {
	return Identifier(a.next.Load())
}

// defaultAllocator backs Allocate, NewNode and NewNeuron.
var defaultAllocator Allocator

// Allocate returns a process-wide unique identifier.
func Allocate() Identifier {
	return defaultAllocator.Next()
}

// DefaultAllocator returns the process-wide allocator.
func DefaultAllocator() *Allocator {
	return &defaultAllocator
}
