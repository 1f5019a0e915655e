// Package float8 - Configuration for casting linear-layer operands to
// 8-bit floats during training.
//
// A training step of a linear layer runs three gemms: output
// (input @ weight), grad_input (grad_output @ weight) and grad_weight
// (input @ grad_output). This package decides, per operand per gemm,
// whether the tensor is cast to float8, at what granularity it is
// scaled and to which target type, and validates the cross-gemm
// consistency rules the kernel layer relies on. The kernels themselves
// live elsewhere; every config they receive has already been validated
// here.
package float8

import (
	"strings"

	"github.com/pkg/errors"
)

// ScalingType describes whether a tensor is scaled when cast.
type ScalingType string

const (
	// ScalingDynamic computes a scale from the tensor's live statistics
	// at cast time.
	ScalingDynamic ScalingType = "dynamic"

	// ScalingDisabled skips scaling; the tensor stays in its original
	// precision.
	ScalingDisabled ScalingType = "disabled"
)

// ParseScalingType parses a ScalingType from its canonical name.
func ParseScalingType(s string) (ScalingType, error) {
	switch ScalingType(s) {
	case ScalingDynamic, ScalingDisabled:
		return ScalingType(s), nil
	default:
		valid := []string{string(ScalingDynamic), string(ScalingDisabled)}
		return "", errors.Errorf("unsupported scaling type %q - valid types are %s", s, strings.Join(valid, ", "))
	}
}

// String returns the canonical name of the scaling type.
func (s ScalingType) String() string {
	return string(s)
}

// ShortString returns the compact code used in configuration labels.
func (s ScalingType) ShortString() string {
	switch s {
	case ScalingDisabled:
		return "dis"
	default:
		return "dyn"
	}
}

// ScalingGranularity describes the granularity at which a scale factor
// applies.
type ScalingGranularity string

const (
	// GranularityTensorwise uses a single scale for the whole tensor.
	GranularityTensorwise ScalingGranularity = "tensorwise"

	// GranularityAxiswise computes one scale per slice along a chosen
	// axis, collapsing that axis to size 1.
	GranularityAxiswise ScalingGranularity = "axiswise"
)

// ParseScalingGranularity parses a ScalingGranularity from its
// canonical name.
func ParseScalingGranularity(s string) (ScalingGranularity, error) {
	switch ScalingGranularity(s) {
	case GranularityTensorwise, GranularityAxiswise:
		return ScalingGranularity(s), nil
	default:
		valid := []string{string(GranularityTensorwise), string(GranularityAxiswise)}
		return "", errors.Errorf("unsupported scaling granularity %q - valid granularities are %s", s, strings.Join(valid, ", "))
	}
}

// String returns the canonical name of the granularity.
func (g ScalingGranularity) String() string {
	return string(g)
}

// ShortString returns the compact code used in configuration labels.
func (g ScalingGranularity) ShortString() string {
	switch g {
	case GranularityAxiswise:
		return "axs"
	default:
		return "ten"
	}
}
