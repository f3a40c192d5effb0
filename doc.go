// Package synapse implements a minimal artificial-neuron primitive.
//
// A neuron accumulates weighted scalar input lines and emits a bounded output
// through a hyperbolic-tangent activation. Every unit receives a unique
// identifier from a process-wide atomic allocator when it is constructed.
//
// # Architecture Overview
//
//   - Neurons: register (value, weight, source id) lines, update to tanh(v·w)
//   - Nodes: plain identifier-bearing value holders used as external inputs
//   - Kernels: pure dot-product and activation functions
//   - Runtime: tick loop driving circuits described in YAML
//
// The primitive does not manage topology. Callers own the tick loop: register
// inputs, call Update, read Value, then ClearInputs before the next tick. The
// runtime package is one such caller.
//
// # Basic Usage
//
//	in := core.NewNode()
//	n := core.NewNeuron()
//
//	in.Update(0.5)
//	n.AddInput(in.Value(), 2.0, in.ID())
//	n.Update()
//	n.Ping() // Pinged neuron with id 1, a value of 0.7615941559557649, ...
//
// Running a circuit file:
//
//	synrun -ticks 8 -ping-every 4 examples/loop.yaml
//
// # Package Structure
//
//   - core: Allocator, Neuron and Node
//   - kernels: dot product and activation functions
//   - model: circuit description, YAML loading and validation
//   - runtime: execution engine with logging and metrics
//   - config: layered settings for the command-line tools
//   - cmd: command-line tools (synrun, synperf)
package synapse
