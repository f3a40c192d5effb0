package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/sbl8/synapse/core"
	"github.com/sbl8/synapse/kernels"
)

var (
	testType = flag.String("test", "all", "Test type: all, dot, activation, neuron")
	size     = flag.Int("size", 1024, "Test data size")
	iter     = flag.Int("iter", 1000, "Number of iterations")
)

func main() {
	flag.Parse()

	fmt.Printf("Synapse Performance Analysis Tool\n")
	fmt.Printf("=================================\n")
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Test Size: %d elements\n", *size)
	fmt.Printf("Iterations: %d\n", *iter)
	fmt.Printf("\n")

	switch *testType {
	case "all":
		runDotTests()
		runActivationTests()
		runNeuronTests()
	case "dot":
		runDotTests()
	case "activation":
		runActivationTests()
	case "neuron":
		runNeuronTests()
	default:
		fmt.Printf("Unknown test type: %s\n", *testType)
		os.Exit(1)
	}
}

// elementsPerSecond reports throughput in millions of elements per second
func elementsPerSecond(duration time.Duration) float64 {
	return float64(*size*(*iter)) / duration.Seconds() / 1e6
}

func runDotTests() {
	fmt.Printf("Dot Product Performance\n")
	fmt.Printf("-----------------------\n")

	a := generate(*size, 1)
	b := generate(*size, 4)

	var sink float64
	start := time.Now()
	for i := 0; i < *iter; i++ {
		sink += kernels.Dot(a, b)
	}
	elapsed := time.Since(start)

	fmt.Printf("Dot:                 %v (%.2f Mops/s)\n", elapsed, elementsPerSecond(elapsed))
	fmt.Printf("  checksum: %g\n\n", sink)
}

func runActivationTests() {
	fmt.Printf("Activation Functions Performance\n")
	fmt.Printf("--------------------------------\n")

	data := generate(*size, 10)
	for _, name := range []string{kernels.ActTanh, kernels.ActSigmoid, kernels.ActReLU, kernels.ActIdentity} {
		fn := kernels.GetActivation(name)

		var sink float64
		start := time.Now()
		for i := 0; i < *iter; i++ {
			for _, x := range data {
				sink += fn(x)
			}
		}
		elapsed := time.Since(start)

		fmt.Printf("%-15s:      %v (%.2f Mops/s)\n", name, elapsed, elementsPerSecond(elapsed))
		_ = sink
	}
	fmt.Printf("\n")
}

func runNeuronTests() {
	fmt.Printf("Neuron Update Performance\n")
	fmt.Printf("-------------------------\n")

	values := generate(*size, 1)
	weights := generate(*size, 4)
	n := core.NewNeuronFrom(core.NewAllocator())

	start := time.Now()
	for i := 0; i < *iter; i++ {
		n.ClearInputs()
		for j := range values {
			n.AddInput(values[j], weights[j], core.Identifier(j))
		}
		n.Update()
	}
	elapsed := time.Since(start)

	fmt.Printf("Register+Update:     %v (%.2f Minputs/s)\n", elapsed, elementsPerSecond(elapsed))
	fmt.Printf("  final value: %g\n\n", n.Value())
}

// generate returns n values uniformly drawn from [-bound, bound]
func generate(n int, bound float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = (rand.Float64()*2 - 1) * bound
	}
	return data
}
