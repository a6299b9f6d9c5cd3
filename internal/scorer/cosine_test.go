package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0},
		{"opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, -1},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 0, 0}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMappedCosine_Range(t *testing.T) {
	assert.InDelta(t, 1.0, mappedCosine([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, mappedCosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.5, mappedCosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$1000", 1000, true},
		{"100-200 USD", 100, true},
		{"1-2 weeks", 1, true},
		{"about 3.5 days", 3.5, true},
		{"Not specified", 0, false},
		{"flexible", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.input)
		assert.Equal(t, tt.ok, ok, "parseAmount(%q)", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "parseAmount(%q)", tt.input)
		}
	}
}

func TestNumericCloseness(t *testing.T) {
	assert.Equal(t, 1.0, numericCloseness(100, 100))
	assert.Equal(t, 1.0, numericCloseness(0, 0))
	assert.InDelta(t, 0.5, numericCloseness(100, 200), 1e-9)
	assert.InDelta(t, 0.2, numericCloseness(1000, 5000), 1e-9)
	assert.Equal(t, 0.0, numericCloseness(0, 50))
}
