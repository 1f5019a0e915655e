package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nvr-ai/go-float8/float8"
	"github.com/nvr-ai/go-float8/platform"
)

func main() {
	var (
		recipe = flag.String("recipe", "tensorwise", "Recipe name to resolve")
		fnuz   = flag.Bool("fnuz", false, "Force the fnuz (MI300) float8 type pair instead of probing")
		ocp    = flag.Bool("ocp", false, "Force the OCP float8 type pair instead of probing")
	)
	flag.Parse()

	var types *platform.TypeConfig
	switch {
	case *fnuz && *ocp:
		log.Fatal("-fnuz and -ocp are mutually exclusive")
	case *fnuz:
		tc := platform.FNUZTypes()
		types = &tc
	case *ocp:
		tc := platform.OCPTypes()
		types = &tc
	}

	config, err := float8.FromRecipeString(*recipe, types)
	if err != nil {
		log.Fatalf("Failed to resolve recipe: %v", err)
	}

	fmt.Printf("recipe: %s\n", *recipe)
	fmt.Printf("types:  e4m3=%s e5m2=%s\n", config.Types.E4M3, config.Types.E5M2)
	fmt.Printf("flags:  fsdp_all_gather=%t pad_inner_dim=%t emulate=%t round_scales_pow2=%t\n",
		config.EnableFSDPAllGather, config.PadInnerDim, config.Emulate, config.RoundScalesToPowerOfTwo)

	gemms := []struct {
		name string
		a, b float8.CastConfig
		gemm float8.GemmConfig
	}{
		{"output", config.Input, config.Weight, config.Output},
		{"grad_input", config.GradOutput, config.WeightForGradInput, config.GradInput},
		{"grad_weight", config.InputForGradWeight, config.GradOutputForGradWeight, config.GradWeight},
	}
	for _, g := range gemms {
		a, err := g.a.ShortString(config.Types)
		if err != nil {
			log.Fatalf("Failed to label %s operand: %v", g.name, err)
		}
		b, err := g.b.ShortString(config.Types)
		if err != nil {
			log.Fatalf("Failed to label %s operand: %v", g.name, err)
		}
		fmt.Printf("  %-11s %s x %s fast_accum=%t\n", g.name, a, b, g.gemm.UseFastAccum)
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Resolves a float8 linear-layer recipe and prints the cast plan.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -recipe rowwise\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "  %s -recipe rowwise_with_gw_hp -fnuz\n", filepath.Base(os.Args[0]))
	}
}
