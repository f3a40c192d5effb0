// Package model defines the circuit description used by the synapse runtime.
//
// A circuit is a small YAML document naming external inputs and neurons, and
// the weighted synapses feeding each neuron:
//
//	name: xor-ish
//	inputs:
//	  - name: a
//	    series: [1, -1, 1, -1]
//	neurons:
//	  - name: h
//	    synapses:
//	      - {from: a, weight: 2.5}
//	      - {from: h, weight: -1}
//
// Synapses may reference inputs or neurons, including the neuron itself, so
// cycles are allowed. Input series values must lie in [-1, 1] and weights in
// [-4, 4]; Validate enforces both along with name resolution.
package model

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Circuit is a named set of inputs and neurons
type Circuit struct {
	Name    string       `yaml:"name" validate:"required"`
	Inputs  []InputSpec  `yaml:"inputs" validate:"dive"`
	Neurons []NeuronSpec `yaml:"neurons" validate:"dive"`
}

// InputSpec describes an external input. Series is replayed cyclically, one
// value per tick.
type InputSpec struct {
	Name   string    `yaml:"name" validate:"required"`
	Series []float64 `yaml:"series" validate:"required,min=1,dive,gte=-1,lte=1"`
}

// NeuronSpec describes a neuron and its incoming synapses
type NeuronSpec struct {
	Name     string        `yaml:"name" validate:"required"`
	Synapses []SynapseSpec `yaml:"synapses" validate:"dive"`
}

// SynapseSpec is one weighted connection from a named unit
type SynapseSpec struct {
	From   string  `yaml:"from" validate:"required"`
	Weight float64 `yaml:"weight" validate:"gte=-4,lte=4"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes and validates a circuit document
func Parse(data []byte) (*Circuit, error) {
	var c Circuit
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCircuit, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and parses a circuit file
func LoadFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("circuit %s: %w", path, err)
	}
	return c, nil
}

// Validate checks field constraints, name uniqueness and synapse sources.
func (c *Circuit) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: circuit is nil", ErrInvalidCircuit)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidCircuit, describe(verrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidCircuit, err)
	}
	if len(c.Inputs)+len(c.Neurons) == 0 {
		return ErrEmptyCircuit
	}

	names := make(map[string]struct{}, len(c.Inputs)+len(c.Neurons))
	for _, name := range c.UnitNames() {
		if _, ok := names[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		names[name] = struct{}{}
	}
	for _, n := range c.Neurons {
		for _, s := range n.Synapses {
			if _, ok := names[s.From]; !ok {
				return fmt.Errorf("%w: neuron %q references %q", ErrUnknownSource, n.Name, s.From)
			}
		}
	}
	return nil
}

// UnitNames returns input names followed by neuron names, in declaration order.
func (c *Circuit) UnitNames() []string {
	names := make([]string, 0, len(c.Inputs)+len(c.Neurons))
	for _, in := range c.Inputs {
		names = append(names, in.Name)
	}
	for _, n := range c.Neurons {
		names = append(names, n.Name)
	}
	return names
}

// SynapseCount returns the total number of synapses
func (c *Circuit) SynapseCount() int {
	total := 0
	for _, n := range c.Neurons {
		total += len(n.Synapses)
	}
	return total
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
