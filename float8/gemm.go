// Package float8 - Per-gemm kernel options.
package float8

// GemmConfig holds kernel-level execution flags for one of the three
// gemms in a training step.
type GemmConfig struct {
	// UseFastAccum enables fast accumulation in lower precision.
	// No-op when the layer runs in emulation.
	UseFastAccum bool `json:"useFastAccum" yaml:"useFastAccum"`
}
