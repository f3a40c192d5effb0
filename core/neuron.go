// Package core provides the neuron primitive for synapse.
//
// This package implements the two identifier-bearing units of the module and
// the allocator they share:
//   - Allocator: atomic counter issuing ascending Identifiers from 0
//   - Neuron: accumulates weighted input lines and emits tanh(values·weights)
//   - Node: plain scalar holder with an id, used as an external input source
//
// Neurons and Nodes are owned by a single caller and are not synchronised.
// The caller drives ticks: register inputs, call Update, read Value, and
// ClearInputs before the next round of registrations.
package core

import (
	"fmt"
	"io"
	"os"

	"github.com/sbl8/synapse/kernels"
)

// Advisory input bounds. They are not enforced by AddInput; see Validate.
const (
	MinInputValue  = -1.0
	MaxInputValue  = 1.0
	MinInputWeight = -4.0
	MaxInputWeight = 4.0
)

// Input is one registered input line
type Input struct {
	Source Identifier
	Value  float64
	Weight float64
}

// Neuron takes weighted input values and produces one output in (-1, 1).
type Neuron struct {
	value float64
	id    Identifier

	// parallel registries, always equal in length
	inVals    []float64
	inWeights []float64
	inIDs     []Identifier
}

// NewNeuron creates a Neuron with value 0 and an id from the process-wide allocator.
func NewNeuron() *Neuron {
	return NewNeuronFrom(&defaultAllocator)
}

// NewNeuronFrom creates a Neuron whose id comes from a.
func NewNeuronFrom(a *Allocator) *Neuron {
	return &Neuron{id: a.Next()}
}

// ID returns the neuron identifier
func (n *Neuron) ID() Identifier {
	return n.id
}

// Value returns the output computed by the last Update, or 0.
func (n *Neuron) Value() float64 {
	return n.value
}

// AddInput appends one input line. Lines are never merged, so registering
// the same source twice counts it twice.
func (n *Neuron) AddInput(value, weight float64, source Identifier) {
	n.inIDs = append(n.inIDs, source)
	n.inVals = append(n.inVals, value)
	n.inWeights = append(n.inWeights, weight)
}

// Update recomputes the output as tanh of the dot product of input values
// and weights. Registered inputs are kept.
func (n *Neuron) Update() {
	n.value = kernels.Activate(n.inVals, n.inWeights)
}

// ClearInputs drops every registered input line, keeping the current value.
func (n *Neuron) ClearInputs() {
	n.inVals = n.inVals[:0]
	n.inWeights = n.inWeights[:0]
	n.inIDs = n.inIDs[:0]
}

// InputCount returns the number of registered input lines
func (n *Neuron) InputCount() int {
	return len(n.inVals)
}

// Inputs returns a copy of the registered input lines in registration order.
func (n *Neuron) Inputs() []Input {
	lines := make([]Input, len(n.inVals))
	for i := range n.inVals {
		lines[i] = Input{Source: n.inIDs[i], Value: n.inVals[i], Weight: n.inWeights[i]}
	}
	return lines
}

// Validate reports the first input line outside the advisory bounds.
// NaN is out of range.
func (n *Neuron) Validate() error {
	for i := range n.inVals {
		if v := n.inVals[i]; !(v >= MinInputValue && v <= MaxInputValue) {
			return fmt.Errorf("neuron %d line %d (source %d): %w: %v", n.id, i, n.inIDs[i], ErrValueOutOfRange, v)
		}
		if w := n.inWeights[i]; !(w >= MinInputWeight && w <= MaxInputWeight) {
			return fmt.Errorf("neuron %d line %d (source %d): %w: %v", n.id, i, n.inIDs[i], ErrWeightOutOfRange, w)
		}
	}
	return nil
}

// Ping writes a diagnostic line to stdout.
func (n *Neuron) Ping() {
	_ = n.PingTo(os.Stdout)
}

// PingTo writes the diagnostic line to w.
// The weights field repeats the input values list.
func (n *Neuron) PingTo(w io.Writer) error {
	_, err := io.WriteString(w, n.pingLine()+"\n")
	return err
}

func (n *Neuron) pingLine() string {
	return "Pinged neuron with id " + fmt.Sprint(uint64(n.id)) +
		", a value of " + formatFloat(n.value) +
		", input values of " + formatSet(n.inVals) +
		", and input weights of " + formatSet(n.inVals) + "."
}
