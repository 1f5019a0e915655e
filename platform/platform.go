// Package platform - One-time accelerator probe selecting the preferred
// float8 type pair.
//
// Hardware exposes one of two physical 8-bit float families: the OCP
// e4m3fn/e5m2 pair (NVIDIA, recent AMD) or the fnuz variants (MI300-class
// ROCm). The probe runs once per process; everything downstream receives
// the result as an opaque TypeConfig and never re-queries the hardware.
package platform

import (
	"sync"

	"github.com/nvr-ai/go-float8/dtypes"
)

// TypeConfig holds the preferred float8 type pair for the current
// accelerator: one 4-bit-mantissa family for operands that need
// precision, one 2-bit-mantissa family for gradients that need range.
type TypeConfig struct {
	// E4M3 is the preferred 4-bit-mantissa (e4m3) type.
	E4M3 dtypes.DType `json:"e4m3" yaml:"e4m3"`

	// E5M2 is the preferred 2-bit-mantissa (e5m2) type.
	E5M2 dtypes.DType `json:"e5m2" yaml:"e5m2"`
}

// OCPTypes returns the OCP float8 pair (e4m3fn/e5m2).
func OCPTypes() TypeConfig {
	return TypeConfig{
		E4M3: dtypes.Float8E4M3FN,
		E5M2: dtypes.Float8E5M2,
	}
}

// FNUZTypes returns the fnuz float8 pair used by MI300-class ROCm
// accelerators.
func FNUZTypes() TypeConfig {
	return TypeConfig{
		E4M3: dtypes.Float8E4M3FNUZ,
		E5M2: dtypes.Float8E5M2FNUZ,
	}
}

// Detect probes the host and returns the preferred type pair. The probe
// is advisory: hosts without a recognized accelerator get the OCP pair.
func Detect() TypeConfig {
	if hasROCm() && isMI300() {
		return FNUZTypes()
	}
	return OCPTypes()
}

var (
	defaultOnce  sync.Once
	defaultTypes TypeConfig
)

// Default returns the detected type pair, probing the host at most once
// per process.
func Default() TypeConfig {
	defaultOnce.Do(func() {
		defaultTypes = Detect()
	})
	return defaultTypes
}
