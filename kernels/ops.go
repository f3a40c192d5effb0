// Package kernels provides the numeric operations behind the synapse neuron.
//
// All kernels are pure functions over float64 slices with no allocations:
//   - Dot: sum of elementwise products of two equal-length vectors
//   - Activations: tanh, logistic sigmoid, ReLU, identity
//   - Activate: tanh(Dot(values, weights)), the neuron transfer function
//
// Dot treats mismatched vector lengths as a programming error and panics.
package kernels

import "math"

// ActivationFn maps a weighted sum to an output value
type ActivationFn func(x float64) float64

// Activation names
const (
	ActIdentity = "identity"
	ActTanh     = "tanh"
	ActSigmoid  = "sigmoid"
	ActReLU     = "relu"
)

// Catalog maps activation names to implementations
var Catalog = map[string]ActivationFn{
	ActIdentity: Identity,
	ActTanh:     Tanh,
	ActSigmoid:  Sigmoid,
	ActReLU:     ReLU,
}

// GetActivation returns the activation registered under name, or nil.
func GetActivation(name string) ActivationFn {
	return Catalog[name]
}

// Dot computes the dot product of a and b. It panics if the lengths differ.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("vector length mismatch")
	}

	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Activate returns tanh(Dot(values, weights)).
func Activate(values, weights []float64) float64 {
	return Tanh(Dot(values, weights))
}

// Tanh is the hyperbolic tangent
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// Sigmoid implements 1 / (1 + e^(-x))
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ReLU implements max(0, x)
func ReLU(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// Identity returns x unchanged
func Identity(x float64) float64 {
	return x
}
