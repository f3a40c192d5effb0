// Package runtime drives synapse circuits through update cycles.
//
// The neuron primitive leaves the tick loop to its caller; this package is
// that caller for circuits described by the model package. Each tick:
//  1. Every input node takes the next value of its series
//  2. All unit values are snapshot into the previous-tick buffer
//  3. Every neuron clears its inputs, registers one line per synapse from the
//     snapshot, and updates
//
// Because neurons read the snapshot, a neuron sees other neurons' outputs
// from the previous tick, so cyclic circuits are well defined. Engines are
// not safe for concurrent use.
package runtime

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sbl8/synapse/core"
	"github.com/sbl8/synapse/model"
)

// Options configures engine behavior
type Options struct {
	// Logger receives run and tick events; nil disables logging
	Logger *zap.Logger
	// Registerer enables Prometheus metrics when set
	Registerer prometheus.Registerer
	// Allocator issues unit ids; nil uses the process-wide allocator
	Allocator *core.Allocator
	// Observer is called after every tick
	Observer func(TickReport)
}

// TickReport describes the state after one tick
type TickReport struct {
	Tick   int
	Values map[string]float64
}

// Stats tracks accumulated execution time
type Stats struct {
	Ticks       int
	Elapsed     time.Duration
	AverageTick time.Duration
}

type inputUnit struct {
	name   string
	node   *core.Node
	series []float64
}

type synapse struct {
	slot   int
	source core.Identifier
	weight float64
}

type neuronUnit struct {
	name     string
	neuron   *core.Neuron
	synapses []synapse
}

// Engine executes a circuit tick by tick
type Engine struct {
	circuit  *model.Circuit
	runID    string
	logger   *zap.Logger
	metrics  *metrics
	observer func(TickReport)

	inputs  []inputUnit
	neurons []neuronUnit
	slots   map[string]int
	prev    []float64 // unit values at the start of the current tick

	tick  int
	stats Stats
}

// NewEngine validates c and allocates one Node per input and one Neuron per
// NeuronSpec, in declaration order.
func NewEngine(c *model.Circuit, opts Options) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	alloc := opts.Allocator
	if alloc == nil {
		alloc = core.DefaultAllocator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	e := &Engine{
		circuit:  c,
		runID:    runID,
		logger:   logger.With(zap.String("run_id", runID), zap.String("circuit", c.Name)),
		metrics:  m,
		observer: opts.Observer,
		slots:    make(map[string]int, len(c.Inputs)+len(c.Neurons)),
		prev:     make([]float64, len(c.Inputs)+len(c.Neurons)),
	}

	ids := make([]core.Identifier, 0, len(e.prev))
	for _, in := range c.Inputs {
		node := core.NewNodeFrom(alloc)
		e.slots[in.Name] = len(ids)
		ids = append(ids, node.ID())
		e.inputs = append(e.inputs, inputUnit{name: in.Name, node: node, series: in.Series})
	}
	for _, spec := range c.Neurons {
		n := core.NewNeuronFrom(alloc)
		e.slots[spec.Name] = len(ids)
		ids = append(ids, n.ID())
		e.neurons = append(e.neurons, neuronUnit{name: spec.Name, neuron: n})
	}
	for i, spec := range c.Neurons {
		wires := make([]synapse, len(spec.Synapses))
		for j, s := range spec.Synapses {
			slot := e.slots[s.From]
			wires[j] = synapse{slot: slot, source: ids[slot], weight: s.Weight}
		}
		e.neurons[i].synapses = wires
	}

	e.logger.Debug("engine created",
		zap.Int("inputs", len(e.inputs)),
		zap.Int("neurons", len(e.neurons)),
		zap.Int("synapses", c.SynapseCount()))
	return e, nil
}

// RunID returns the unique id attached to this engine's logs
func (e *Engine) RunID() string {
	return e.runID
}

// Tick returns the number of completed ticks
func (e *Engine) Tick() int {
	return e.tick
}

// Stats returns accumulated execution statistics
func (e *Engine) Stats() Stats {
	return e.stats
}

// Step runs one tick and reports the resulting unit values.
func (e *Engine) Step() TickReport {
	start := time.Now()

	for _, in := range e.inputs {
		in.node.Update(in.series[e.tick%len(in.series)])
	}
	e.snapshot()

	checkRanges := e.logger.Core().Enabled(zap.DebugLevel)
	for _, u := range e.neurons {
		n := u.neuron
		n.ClearInputs()
		for _, s := range u.synapses {
			n.AddInput(e.prev[s.slot], s.weight, s.source)
		}
		if checkRanges {
			if err := n.Validate(); err != nil {
				e.logger.Warn("input out of advisory range", zap.String("neuron", u.name), zap.Error(err))
			}
		}
		n.Update()
	}

	e.tick++
	elapsed := time.Since(start)
	e.record(elapsed)

	report := TickReport{Tick: e.tick, Values: e.Values()}
	e.logger.Debug("tick", zap.Int("tick", e.tick), zap.Duration("elapsed", elapsed))
	if e.observer != nil {
		e.observer(report)
	}
	return report
}

// Run executes ticks steps, stopping early when ctx is done.
func (e *Engine) Run(ctx context.Context, ticks int) (Stats, error) {
	if ticks <= 0 {
		return e.stats, fmt.Errorf("%w: %d", ErrInvalidTicks, ticks)
	}

	e.logger.Info("run started", zap.Int("ticks", ticks), zap.Int("from_tick", e.tick))
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("run cancelled", zap.Int("tick", e.tick), zap.Error(err))
			return e.stats, err
		}
		e.Step()
	}
	e.logger.Info("run finished",
		zap.Int("tick", e.tick),
		zap.Duration("elapsed", e.stats.Elapsed),
		zap.Duration("average_tick", e.stats.AverageTick))
	return e.stats, nil
}

// Value returns the current value of the named input or neuron
func (e *Engine) Value(name string) (float64, bool) {
	slot, ok := e.slots[name]
	if !ok {
		return 0, false
	}
	return e.valueAt(slot), true
}

// Values returns the current value of every unit keyed by name
func (e *Engine) Values() map[string]float64 {
	values := make(map[string]float64, len(e.slots))
	for name, slot := range e.slots {
		values[name] = e.valueAt(slot)
	}
	return values
}

// Neuron returns the named neuron
func (e *Engine) Neuron(name string) (*core.Neuron, bool) {
	slot, ok := e.slots[name]
	if !ok || slot < len(e.inputs) {
		return nil, false
	}
	return e.neurons[slot-len(e.inputs)].neuron, true
}

// Ping writes the named neuron's diagnostic line to w
func (e *Engine) Ping(name string, w io.Writer) error {
	n, ok := e.Neuron(name)
	if !ok {
		return fmt.Errorf("%w: neuron %q", ErrUnknownUnit, name)
	}
	return n.PingTo(w)
}

// PingAll pings every neuron in declaration order
func (e *Engine) PingAll(w io.Writer) error {
	for _, u := range e.neurons {
		if err := u.neuron.PingTo(w); err != nil {
			return fmt.Errorf("ping %s: %w", u.name, err)
		}
	}
	return nil
}

func (e *Engine) valueAt(slot int) float64 {
	if slot < len(e.inputs) {
		return e.inputs[slot].node.Value()
	}
	return e.neurons[slot-len(e.inputs)].neuron.Value()
}

// snapshot copies every unit value into the previous-tick buffer
func (e *Engine) snapshot() {
	for i := range e.prev {
		e.prev[i] = e.valueAt(i)
	}
}

func (e *Engine) record(elapsed time.Duration) {
	e.stats.Ticks++
	e.stats.Elapsed += elapsed
	e.stats.AverageTick = e.stats.Elapsed / time.Duration(e.stats.Ticks)

	if e.metrics == nil {
		return
	}
	e.metrics.ticks.Inc()
	e.metrics.tickSeconds.Observe(elapsed.Seconds())
	for _, u := range e.neurons {
		e.metrics.values.WithLabelValues(e.circuit.Name, u.name).Set(u.neuron.Value())
	}
}
