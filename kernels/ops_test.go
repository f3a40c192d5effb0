package kernels

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-12

// Go reference for Dot
func dotRef(a, b []float64) float64 {
	var sum float64
	for i := 0; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func randomSlice(r *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = r.Float64()*8 - 4
	}
	return s
}

func TestDot(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "empty", a: []float64{}, b: []float64{}, want: 0},
		{name: "nil", a: nil, b: nil, want: 0},
		{name: "single", a: []float64{0.5}, b: []float64{2}, want: 1},
		{name: "mixed signs", a: []float64{0.5, -0.5}, b: []float64{1, 2}, want: -0.5},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dot(tt.a, tt.b))
		})
	}
}

func TestDotMatchesReference(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 3, 4, 7, 16, 100} {
		a := randomSlice(r, n)
		b := randomSlice(r, n)
		assert.Equal(t, dotRef(a, b), Dot(a, b), "n=%d", n)
	}
}

func TestDotLengthMismatchPanics(t *testing.T) {
	t.Parallel()
	cases := [][2][]float64{
		{{1}, {}},
		{{}, {1}},
		{{1, 2, 3}, {1, 2}},
	}
	for _, c := range cases {
		assert.PanicsWithValue(t, "vector length mismatch", func() {
			Dot(c[0], c[1])
		})
	}
}

func TestActivate(t *testing.T) {
	t.Parallel()
	got := Activate([]float64{0.5, -0.5}, []float64{1, 2})
	assert.Equal(t, math.Tanh(-0.5), got)
	assert.InDelta(t, -0.4621, got, 1e-4)

	assert.Equal(t, 0.0, Activate(nil, nil))
}

func TestActivations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{ActIdentity, -2.5, -2.5},
		{ActTanh, 0, 0},
		{ActTanh, 1, math.Tanh(1)},
		{ActSigmoid, 0, 0.5},
		{ActReLU, -3, 0},
		{ActReLU, 3, 3},
	}

	for _, tt := range tests {
		fn := GetActivation(tt.name)
		require.NotNil(t, fn, tt.name)
		assert.InDelta(t, tt.want, fn(tt.x), floatTolerance, "%s(%v)", tt.name, tt.x)
	}

	assert.Nil(t, GetActivation("softsign"))
}

func TestTanhBounded(t *testing.T) {
	t.Parallel()
	for _, x := range []float64{-1e6, -20, -1, 0, 1, 20, 1e6} {
		y := Tanh(x)
		assert.True(t, y >= -1 && y <= 1, "tanh(%v) = %v", x, y)
	}
}

func BenchmarkDot(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	x := randomSlice(r, 1024)
	y := randomSlice(r, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Dot(x, y)
	}
}

func BenchmarkActivate(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	x := randomSlice(r, 64)
	y := randomSlice(r, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Activate(x, y)
	}
}
