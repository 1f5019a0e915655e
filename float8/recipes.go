// Package float8 - Named, pre-validated configuration recipes.
package float8

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-float8/platform"
)

// RecipeName identifies a pre-made linear-layer configuration.
type RecipeName string

const (
	// RecipeTensorwise is the default: dynamic tensorwise scaling for
	// every operand, served by the cuBLAS tensorwise kernel.
	RecipeTensorwise RecipeName = "tensorwise"

	// RecipeRowwise scales every operand axiswise with the e4m3 dtype
	// across the board, served by the CUTLASS rowwise kernel. Scales
	// are floored to powers of two for accuracy.
	RecipeRowwise RecipeName = "rowwise"

	// RecipeRowwiseWithGradWeightHP is rowwise scaling with the
	// grad_weight gemm kept in high precision:
	//
	//	output     = input_fp8_axiswise    @ weight_t_axiswise
	//	grad_input = grad_output_fp8_axiswise @ weight_fp8_tensorwise
	//	grad_weight = input_t_hp           @ grad_output_hp
	//
	// Trades grad_weight throughput for accuracy while each operand
	// only needs axiswise scales across a single dim, which is more
	// amenable to fast kernels. Uses e4m3 across the board, gradients
	// included.
	RecipeRowwiseWithGradWeightHP RecipeName = "rowwise_with_gw_hp"
)

// recipeNames is the closed catalog, in presentation order.
var recipeNames = []RecipeName{
	RecipeTensorwise,
	RecipeRowwise,
	RecipeRowwiseWithGradWeightHP,
}

// ParseRecipeName parses a RecipeName from its canonical string.
//
// Arguments:
//   - s: The recipe name, e.g. "rowwise".
//
// Returns:
//   - RecipeName: The parsed name.
//   - error: An error listing the valid recipe names if s is unknown.
func ParseRecipeName(s string) (RecipeName, error) {
	for _, name := range recipeNames {
		if RecipeName(s) == name {
			return name, nil
		}
	}
	strs := make([]string, len(recipeNames))
	for i := range recipeNames {
		strs[i] = string(recipeNames[i])
	}
	return "", errors.Errorf("unknown recipe %q - valid recipes are %s", s, strings.Join(strs, ", "))
}

// String returns the canonical name of the recipe.
func (n RecipeName) String() string {
	return string(n)
}

// FromRecipe builds the fully validated LinearConfig for a recipe.
//
// Arguments:
//   - name: The recipe to build.
//   - types: Optional float8 type pair override; nil uses the detected
//     platform pair.
//
// Returns:
//   - *LinearConfig: The validated configuration.
//   - error: An internal error if name is outside the closed catalog.
func FromRecipe(name RecipeName, types *platform.TypeConfig) (*LinearConfig, error) {
	resolved := platform.Default()
	if types != nil {
		resolved = *types
	}

	switch name {
	case RecipeTensorwise:
		return NewLinearConfig(LinearConfigArgs{Types: types})

	case RecipeRowwise:
		axiswise := CastConfig{
			Granularity: GranularityAxiswise,
			DType:       resolved.E4M3,
		}
		return NewLinearConfig(LinearConfigArgs{
			Input:      axiswise,
			Weight:     axiswise,
			GradOutput: axiswise,
			// Power of two scales by default for rowwise scaling.
			RoundScalesToPowerOfTwo: true,
			Types:                   types,
		})

	case RecipeRowwiseWithGradWeightHP:
		return NewLinearConfig(LinearConfigArgs{
			// output = input_fp8_axiswise_dim0 @ weight_t_axiswise_dim1
			Input:  CastConfig{Granularity: GranularityAxiswise},
			Weight: CastConfig{Granularity: GranularityAxiswise},

			// grad_input = grad_output_fp8_axiswise_dim0 @ weight_fp8_tensorwise
			GradOutput: CastConfig{
				Granularity: GranularityAxiswise,
				DType:       resolved.E4M3,
			},
			WeightForGradInput: &CastConfig{Granularity: GranularityTensorwise},

			// grad_weight = input_t_hp @ grad_output_hp
			InputForGradWeight: &CastConfig{Scaling: ScalingDisabled},
			GradOutputForGradWeight: &CastConfig{
				Scaling: ScalingDisabled,
				DType:   resolved.E4M3,
			},
			Types: types,
		})

	default:
		return nil, errors.Errorf("internal: recipe %q is outside the closed catalog", name)
	}
}

// FromRecipeString normalizes a recipe string at the API boundary and
// dispatches to FromRecipe.
func FromRecipeString(s string, types *platform.TypeConfig) (*LinearConfig, error) {
	name, err := ParseRecipeName(s)
	if err != nil {
		return nil, err
	}
	return FromRecipe(name, types)
}
