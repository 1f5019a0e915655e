// Package dtypes - Numeric type tokens for reduced-precision training.
package dtypes

import (
	"strings"

	"github.com/pkg/errors"
)

// DType identifies a numeric element type. The zero value means
// "unset"; configuration layers resolve unset types to a platform
// default before use.
type DType string

// DType constants are the supported element types.
const (
	// Float32 is standard IEEE 754 single precision.
	Float32 DType = "float32"

	// BFloat16 is brain float: float32 exponent range, 7 mantissa bits.
	BFloat16 DType = "bfloat16"

	// Float8E4M3FN is the OCP 8-bit float with 4 exponent and 3 mantissa
	// bits, finite-only (no infinities, one NaN encoding).
	Float8E4M3FN DType = "float8_e4m3fn"

	// Float8E5M2 is the OCP 8-bit float with 5 exponent and 2 mantissa
	// bits, IEEE-style specials.
	Float8E5M2 DType = "float8_e5m2"

	// Float8E4M3FNUZ is the e4m3 variant with no infinities and no
	// negative zero, used by MI300-class ROCm accelerators.
	Float8E4M3FNUZ DType = "float8_e4m3fnuz"

	// Float8E5M2FNUZ is the e5m2 variant with no infinities and no
	// negative zero, used by MI300-class ROCm accelerators.
	Float8E5M2FNUZ DType = "float8_e5m2fnuz"
)

// ParseDType parses a DType from its canonical name.
//
// Arguments:
//   - s: The canonical type name, e.g. "float8_e4m3fn".
//
// Returns:
//   - DType: The parsed type.
//   - error: An error listing the supported types if s is unknown.
func ParseDType(s string) (DType, error) {
	switch DType(s) {
	case Float32, BFloat16, Float8E4M3FN, Float8E5M2, Float8E4M3FNUZ, Float8E5M2FNUZ:
		return DType(s), nil
	default:
		supported := []DType{
			Float32,
			BFloat16,
			Float8E4M3FN,
			Float8E5M2,
			Float8E4M3FNUZ,
			Float8E5M2FNUZ,
		}
		strs := make([]string, len(supported))
		for i := range supported {
			strs[i] = string(supported[i])
		}
		return "", errors.Errorf("unsupported dtype %q - supported dtypes are %s", s, strings.Join(strs, ", "))
	}
}

// String returns the canonical name of the type.
func (d DType) String() string {
	return string(d)
}

// IsSet reports whether the type has been resolved.
func (d DType) IsSet() bool {
	return d != ""
}

// ItemSize returns the width of one element in bytes. Unset or unknown
// types report 0.
func (d DType) ItemSize() int {
	switch d {
	case Float32:
		return 4
	case BFloat16:
		return 2
	case Float8E4M3FN, Float8E5M2, Float8E4M3FNUZ, Float8E5M2FNUZ:
		return 1
	default:
		return 0
	}
}

// MantissaBits returns the number of explicit mantissa bits. Unset or
// unknown types report 0.
func (d DType) MantissaBits() int {
	switch d {
	case Float32:
		return 23
	case BFloat16:
		return 7
	case Float8E4M3FN, Float8E4M3FNUZ:
		return 3
	case Float8E5M2, Float8E5M2FNUZ:
		return 2
	default:
		return 0
	}
}

// IsFloatingPoint reports whether the type is a floating-point type.
func (d DType) IsFloatingPoint() bool {
	switch d {
	case Float32, BFloat16, Float8E4M3FN, Float8E5M2, Float8E4M3FNUZ, Float8E5M2FNUZ:
		return true
	default:
		return false
	}
}

// IsFloat8 reports whether the type is an 8-bit floating-point type.
func (d DType) IsFloat8() bool {
	return d.IsFloatingPoint() && d.ItemSize() == 1
}
