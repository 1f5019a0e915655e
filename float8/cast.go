// Package float8 - Per-tensor cast configuration.
package float8

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-float8/dtypes"
	"github.com/nvr-ai/go-float8/platform"
)

// CastConfig describes how a single tensor operand is cast to float8.
// Values returned by NewCastConfig are treated as read-only everywhere
// downstream.
type CastConfig struct {
	// Scaling selects whether a scale is computed for the cast.
	Scaling ScalingType `json:"scaling" yaml:"scaling"`

	// Granularity selects how many scale factors the tensor gets.
	Granularity ScalingGranularity `json:"granularity" yaml:"granularity"`

	// DType is the target type of the cast. Unset means "resolve to the
	// platform default for the operand's role" during linear-config
	// validation.
	DType dtypes.DType `json:"dtype,omitempty" yaml:"dtype,omitempty"`
}

// NewCastConfig defaults unset fields and validates the result.
//
// Arguments:
//   - args: Partially specified cast configuration; empty scaling
//     defaults to dynamic, empty granularity to tensorwise.
//
// Returns:
//   - CastConfig: The validated configuration.
//   - error: An error if axiswise granularity is combined with a
//     non-dynamic scaling type, or the target type is set but not an
//     8-bit float.
func NewCastConfig(args CastConfig) (CastConfig, error) {
	if args.Scaling == "" {
		args.Scaling = ScalingDynamic
	}
	if args.Granularity == "" {
		args.Granularity = GranularityTensorwise
	}

	if args.Granularity == GranularityAxiswise && args.Scaling != ScalingDynamic {
		return CastConfig{}, errors.Errorf(
			"only dynamic scaling is supported for axiswise granularity, got %s",
			args.Scaling,
		)
	}
	if args.DType.IsSet() && !args.DType.IsFloat8() {
		return CastConfig{}, errors.Errorf(
			"target dtype must be an 8-bit floating-point type, got %s",
			args.DType,
		)
	}

	return args, nil
}

// ShortString builds the compact label used in layer names and logs,
// e.g. "dyn_ten_e4m3".
//
// The target type is rendered through a two-entry table keyed by the
// active type pair; a type outside the pair is an error rather than a
// silent default, since a label that misnames the type is worse than no
// label.
//
// Arguments:
//   - types: The active float8 type pair.
//
// Returns:
//   - string: The label.
//   - error: An error if the target type is not in the pair.
func (c CastConfig) ShortString(types platform.TypeConfig) (string, error) {
	var family string
	switch c.DType {
	case types.E4M3:
		family = "e4m3"
	case types.E5M2:
		family = "e5m2"
	default:
		return "", errors.Errorf(
			"dtype %q is not in the active float8 type pair (%s, %s)",
			c.DType, types.E4M3, types.E5M2,
		)
	}
	return fmt.Sprintf("%s_%s_%s", c.Scaling.ShortString(), c.Granularity.ShortString(), family), nil
}
