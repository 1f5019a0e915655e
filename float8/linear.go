// Package float8 - Aggregate linear-layer configuration and validation.
package float8

import (
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-float8/dtypes"
	"github.com/nvr-ai/go-float8/platform"
)

// LinearConfigArgs is the mutable construction stage for a
// LinearConfig. Primary cast slots default field-by-field (empty
// scaling becomes dynamic, empty granularity tensorwise, unset dtype
// resolves to the role's platform default). A nil override slot
// inherits its primary slot. A nil gemm slot gets the gemm's default.
type LinearConfigArgs struct {
	// Input configures casting of `input` for the output gemm.
	Input CastConfig `json:"input" yaml:"input"`

	// InputForGradWeight configures casting of `input` for the
	// grad_weight gemm. Nil inherits Input.
	InputForGradWeight *CastConfig `json:"inputForGradWeight,omitempty" yaml:"inputForGradWeight,omitempty"`

	// Weight configures casting of `weight` for the output gemm.
	Weight CastConfig `json:"weight" yaml:"weight"`

	// WeightForGradInput configures casting of `weight` for the
	// grad_input gemm. Nil inherits Weight.
	WeightForGradInput *CastConfig `json:"weightForGradInput,omitempty" yaml:"weightForGradInput,omitempty"`

	// GradOutput configures casting of `grad_output` for the grad_input
	// gemm.
	GradOutput CastConfig `json:"gradOutput" yaml:"gradOutput"`

	// GradOutputForGradWeight configures casting of `grad_output` for
	// the grad_weight gemm. Nil inherits GradOutput.
	GradOutputForGradWeight *CastConfig `json:"gradOutputForGradWeight,omitempty" yaml:"gradOutputForGradWeight,omitempty"`

	// Output configures the gemm computing the layer output.
	// Nil defaults to fast accumulation on.
	Output *GemmConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// GradInput configures the gemm computing the input gradient.
	// Nil defaults to fast accumulation off.
	GradInput *GemmConfig `json:"gradInput,omitempty" yaml:"gradInput,omitempty"`

	// GradWeight configures the gemm computing the weight gradient.
	// Nil defaults to fast accumulation off.
	GradWeight *GemmConfig `json:"gradWeight,omitempty" yaml:"gradWeight,omitempty"`

	// EnableFSDPAllGather turns on float8 all-gather for sharded
	// weights. Only compatible with tensorwise weight scaling.
	EnableFSDPAllGather bool `json:"enableFSDPAllGather" yaml:"enableFSDPAllGather"`

	// PadInnerDim pads the contracted dimension of both operands to a
	// multiple of 16 before the scaled gemm, at the cost of a memory
	// spike.
	PadInnerDim bool `json:"padInnerDim" yaml:"padInnerDim"`

	// Emulate runs the gemms in numeric emulation instead of hardware
	// accelerated kernels.
	Emulate bool `json:"emulate" yaml:"emulate"`

	// RoundScalesToPowerOfTwo floors computed scales to the nearest
	// power of two. Avoids scale rounding mismatches between the
	// forward and backward passes; see RoundToPowerOfTwo.
	RoundScalesToPowerOfTwo bool `json:"roundScalesToPowerOfTwo" yaml:"roundScalesToPowerOfTwo"`

	// ForceRecomputeFP8WeightInBwd is deprecated and has no effect.
	ForceRecomputeFP8WeightInBwd bool `json:"forceRecomputeFP8WeightInBwd,omitempty" yaml:"forceRecomputeFP8WeightInBwd,omitempty"`

	// Types overrides the platform float8 type pair. Nil uses the
	// process-wide detected pair.
	Types *platform.TypeConfig `json:"types,omitempty" yaml:"types,omitempty"`
}

// LinearConfig is a fully resolved, validated configuration for running
// one linear layer in float8. Instances come out of NewLinearConfig or
// FromRecipe only, are never written after construction, and may be
// shared across goroutines freely.
type LinearConfig struct {
	// The six cast slots, fully resolved: every DType is set and
	// float8, and every override agrees with its primary on DType.
	Input                   CastConfig `json:"input" yaml:"input"`
	InputForGradWeight      CastConfig `json:"inputForGradWeight" yaml:"inputForGradWeight"`
	Weight                  CastConfig `json:"weight" yaml:"weight"`
	WeightForGradInput      CastConfig `json:"weightForGradInput" yaml:"weightForGradInput"`
	GradOutput              CastConfig `json:"gradOutput" yaml:"gradOutput"`
	GradOutputForGradWeight CastConfig `json:"gradOutputForGradWeight" yaml:"gradOutputForGradWeight"`

	// Per-gemm kernel options.
	Output     GemmConfig `json:"output" yaml:"output"`
	GradInput  GemmConfig `json:"gradInput" yaml:"gradInput"`
	GradWeight GemmConfig `json:"gradWeight" yaml:"gradWeight"`

	// Layer-wide flags, as documented on LinearConfigArgs.
	EnableFSDPAllGather          bool `json:"enableFSDPAllGather" yaml:"enableFSDPAllGather"`
	PadInnerDim                  bool `json:"padInnerDim" yaml:"padInnerDim"`
	Emulate                      bool `json:"emulate" yaml:"emulate"`
	RoundScalesToPowerOfTwo      bool `json:"roundScalesToPowerOfTwo" yaml:"roundScalesToPowerOfTwo"`
	ForceRecomputeFP8WeightInBwd bool `json:"forceRecomputeFP8WeightInBwd" yaml:"forceRecomputeFP8WeightInBwd"`

	// Types is the float8 type pair the config was resolved against.
	Types platform.TypeConfig `json:"types" yaml:"types"`
}

var deprecationOnce sync.Once

// NewLinearConfig runs the validation-and-defaulting pass and returns
// the frozen configuration.
//
// The pass is ordered: overrides inherit primaries first, then the
// FSDP/granularity check, then the per-gemm operand pairing check, then
// per-operand dtype resolution and cross-gemm consistency. Later steps
// consume values resolved by earlier ones. Every violation is fatal to
// the construction attempt; there is no partial configuration.
//
// Arguments:
//   - args: The construction stage; see LinearConfigArgs.
//
// Returns:
//   - *LinearConfig: The validated configuration.
//   - error: An error naming the offending operand or gemm.
func NewLinearConfig(args LinearConfigArgs) (*LinearConfig, error) {
	types := platform.Default()
	if args.Types != nil {
		types = *args.Types
	}

	cfg := &LinearConfig{
		EnableFSDPAllGather:          args.EnableFSDPAllGather,
		PadInnerDim:                  args.PadInnerDim,
		Emulate:                      args.Emulate,
		RoundScalesToPowerOfTwo:      args.RoundScalesToPowerOfTwo,
		ForceRecomputeFP8WeightInBwd: args.ForceRecomputeFP8WeightInBwd,
		Types:                        types,
	}

	var err error
	if cfg.Input, err = NewCastConfig(args.Input); err != nil {
		return nil, errors.Wrap(err, "input")
	}
	if cfg.Weight, err = NewCastConfig(args.Weight); err != nil {
		return nil, errors.Wrap(err, "weight")
	}
	if cfg.GradOutput, err = NewCastConfig(args.GradOutput); err != nil {
		return nil, errors.Wrap(err, "grad_output")
	}

	// Step 1: unset overrides inherit their primary slot.
	if cfg.InputForGradWeight, err = overrideOrPrimary(args.InputForGradWeight, cfg.Input); err != nil {
		return nil, errors.Wrap(err, "input_for_grad_weight")
	}
	if cfg.WeightForGradInput, err = overrideOrPrimary(args.WeightForGradInput, cfg.Weight); err != nil {
		return nil, errors.Wrap(err, "weight_for_grad_input")
	}
	if cfg.GradOutputForGradWeight, err = overrideOrPrimary(args.GradOutputForGradWeight, cfg.GradOutput); err != nil {
		return nil, errors.Wrap(err, "grad_output_for_grad_weight")
	}

	cfg.Output = gemmOrDefault(args.Output, GemmConfig{UseFastAccum: true})
	cfg.GradInput = gemmOrDefault(args.GradInput, GemmConfig{})
	cfg.GradWeight = gemmOrDefault(args.GradWeight, GemmConfig{})

	// Step 2: float8 all-gather only supports tensorwise weight
	// scaling.
	if cfg.Weight.Granularity != GranularityTensorwise && cfg.EnableFSDPAllGather {
		return nil, errors.Errorf(
			"EnableFSDPAllGather only supports tensorwise weight scaling granularity, got %s",
			cfg.Weight.Granularity,
		)
	}

	// Step 3: the gemm kernels require both operands either in high
	// precision or both in float8, never mixed.
	pairs := []struct {
		a, b CastConfig
		gemm string
	}{
		{cfg.Input, cfg.Weight, "output"},
		{cfg.GradOutput, cfg.WeightForGradInput, "grad_input"},
		{cfg.InputForGradWeight, cfg.GradOutputForGradWeight, "grad_weight"},
	}
	for _, p := range pairs {
		aDisabled := p.a.Scaling == ScalingDisabled
		bDisabled := p.b.Scaling == ScalingDisabled
		if aDisabled != bDisabled {
			return nil, errors.Errorf("incompatible operand precision for the %s gemm", p.gemm)
		}
	}

	// Step 4: resolve unset target dtypes to the role's platform
	// default, then require each operand to use one dtype across both
	// gemms that consume it.
	operands := []struct {
		primary, override *CastConfig
		role              string
		dtype             dtypes.DType
	}{
		{&cfg.Input, &cfg.InputForGradWeight, "input", types.E4M3},
		{&cfg.Weight, &cfg.WeightForGradInput, "weight", types.E4M3},
		{&cfg.GradOutput, &cfg.GradOutputForGradWeight, "grad_output", types.E5M2},
	}
	for _, op := range operands {
		if !op.primary.DType.IsSet() {
			op.primary.DType = op.dtype
		}
		if !op.override.DType.IsSet() {
			op.override.DType = op.dtype
		}
		if op.primary.DType != op.override.DType {
			return nil, errors.Errorf(
				"%s must be cast to the same dtype in both gemms it is used in, got %s and %s",
				op.role, op.primary.DType, op.override.DType,
			)
		}
		if !op.primary.DType.IsFloat8() {
			return nil, errors.Errorf(
				"%s resolved to non-float8 dtype %s", op.role, op.primary.DType,
			)
		}
	}

	if cfg.ForceRecomputeFP8WeightInBwd {
		deprecationOnce.Do(func() {
			log.Printf("float8: ForceRecomputeFP8WeightInBwd is deprecated, has no effect and will be removed in a future release")
		})
	}

	return cfg, nil
}

// overrideOrPrimary validates an explicit override slot or falls back
// to the already-validated primary.
func overrideOrPrimary(override *CastConfig, primary CastConfig) (CastConfig, error) {
	if override == nil {
		return primary, nil
	}
	return NewCastConfig(*override)
}

func gemmOrDefault(g *GemmConfig, def GemmConfig) GemmConfig {
	if g == nil {
		return def
	}
	return *g
}
