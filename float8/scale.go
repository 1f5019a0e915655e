// Package float8 - Scale post-processing helpers shared with the
// kernel layer.
package float8

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// exponentMask keeps the sign and exponent bits of a float32, clearing
// the mantissa. For a positive normal value that is exactly "floor to
// the nearest power of two".
const exponentMask uint32 = 0xFF800000

// RoundToPowerOfTwo floors a computed scale to the nearest power of
// two. Rounded scales avoid quantization error from multiplying and
// dividing by the scale, and guarantee large values quantize to the
// same number in the forward and backward passes.
//
// Non-finite and non-positive inputs pass through unchanged; subnormal
// scales flush to zero.
func RoundToPowerOfTwo(scale float32) float32 {
	if math32.IsNaN(scale) || math32.IsInf(scale, 0) || scale <= 0 {
		return scale
	}
	return math32.Float32frombits(math32.Float32bits(scale) & exponentMask)
}

// ScaleShape returns the shape of the scale tensor for casting a tensor
// of the given shape at the given granularity.
//
// Arguments:
//   - shape: The shape of the tensor being cast.
//   - granularity: Tensorwise or axiswise.
//   - axis: The axis collapsed to size 1 for axiswise scaling; ignored
//     for tensorwise.
//
// Returns:
//   - tensor.Shape: {1} for tensorwise; the input shape with axis
//     collapsed to 1 for axiswise.
//   - error: An error if axis is out of range or the granularity is
//     outside the closed set.
func ScaleShape(shape tensor.Shape, granularity ScalingGranularity, axis int) (tensor.Shape, error) {
	switch granularity {
	case GranularityTensorwise:
		return tensor.Shape{1}, nil
	case GranularityAxiswise:
		if axis < 0 || axis >= shape.Dims() {
			return nil, errors.Errorf("axis %d out of range for shape %v", axis, shape)
		}
		out := shape.Clone()
		out[axis] = 1
		return out, nil
	default:
		return nil, errors.Errorf("unsupported scaling granularity %q", granularity)
	}
}
