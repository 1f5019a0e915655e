package platform

import (
	"testing"

	"github.com/nvr-ai/go-float8/dtypes"
	"github.com/stretchr/testify/assert"
)

func TestTypePairs(t *testing.T) {
	ocp := OCPTypes()
	assert.Equal(t, dtypes.Float8E4M3FN, ocp.E4M3)
	assert.Equal(t, dtypes.Float8E5M2, ocp.E5M2)

	fnuz := FNUZTypes()
	assert.Equal(t, dtypes.Float8E4M3FNUZ, fnuz.E4M3)
	assert.Equal(t, dtypes.Float8E5M2FNUZ, fnuz.E5M2)
}

func TestPairsAreFloat8(t *testing.T) {
	for _, tc := range []TypeConfig{OCPTypes(), FNUZTypes()} {
		assert.True(t, tc.E4M3.IsFloat8())
		assert.True(t, tc.E5M2.IsFloat8())
		assert.Equal(t, 3, tc.E4M3.MantissaBits())
		assert.Equal(t, 2, tc.E5M2.MantissaBits())
	}
}

func TestDetectReturnsValidPair(t *testing.T) {
	// Whatever hardware the test host has, the probe must hand back one
	// of the two physical pairs.
	got := Detect()
	assert.Contains(t, []TypeConfig{OCPTypes(), FNUZTypes()}, got)
}

func TestDefaultIsStable(t *testing.T) {
	assert.Equal(t, Default(), Default())
}
