package float8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalingType(t *testing.T) {
	tests := []struct {
		input   string
		want    ScalingType
		wantErr bool
	}{
		{input: "dynamic", want: ScalingDynamic},
		{input: "disabled", want: ScalingDisabled},
		{input: "static", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseScalingType(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid types are")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseScalingGranularity(t *testing.T) {
	tests := []struct {
		input   string
		want    ScalingGranularity
		wantErr bool
	}{
		{input: "tensorwise", want: GranularityTensorwise},
		{input: "axiswise", want: GranularityAxiswise},
		{input: "blockwise", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseScalingGranularity(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShortCodes(t *testing.T) {
	assert.Equal(t, "dyn", ScalingDynamic.ShortString())
	assert.Equal(t, "dis", ScalingDisabled.ShortString())
	assert.Equal(t, "ten", GranularityTensorwise.ShortString())
	assert.Equal(t, "axs", GranularityAxiswise.ShortString())
}
