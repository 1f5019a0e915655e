package float8

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestRoundToPowerOfTwo(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{name: "exact power passes through", input: 1.0, want: 1.0},
		{name: "rounds down not up", input: 3.0, want: 2.0},
		{name: "fractional", input: 0.75, want: 0.5},
		{name: "between large powers", input: 6.5, want: 4.0},
		{name: "large scale", input: 1048577.0, want: 1048576.0},
		{name: "small power", input: 0.25, want: 0.25},
		{name: "zero passes through", input: 0, want: 0},
		{name: "negative passes through", input: -3.0, want: -3.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoundToPowerOfTwo(tc.input))
		})
	}

	assert.True(t, math32.IsInf(RoundToPowerOfTwo(math32.Inf(1)), 1))
	assert.True(t, math32.IsNaN(RoundToPowerOfTwo(math32.NaN())))
}

func TestScaleShape(t *testing.T) {
	shape := tensor.Shape{4, 8}

	tests := []struct {
		name        string
		granularity ScalingGranularity
		axis        int
		want        tensor.Shape
		wantErr     bool
	}{
		{name: "tensorwise collapses to a scalar", granularity: GranularityTensorwise, axis: 0, want: tensor.Shape{1}},
		{name: "axiswise dim0", granularity: GranularityAxiswise, axis: 0, want: tensor.Shape{1, 8}},
		{name: "axiswise dim1", granularity: GranularityAxiswise, axis: 1, want: tensor.Shape{4, 1}},
		{name: "axis out of range", granularity: GranularityAxiswise, axis: 2, wantErr: true},
		{name: "negative axis", granularity: GranularityAxiswise, axis: -1, wantErr: true},
		{name: "unknown granularity", granularity: ScalingGranularity("blockwise"), axis: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScaleShape(shape, tc.granularity, tc.axis)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	// The input shape must not be mutated.
	_, err := ScaleShape(shape, GranularityAxiswise, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 8}, shape)
}
