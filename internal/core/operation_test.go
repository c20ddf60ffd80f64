package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsOnlyFillSelectedOperation(t *testing.T) {
	tests := []struct {
		op   Operation
		want Params
	}{
		{op: OperationNone, want: Params{Operation: OperationNone}},
		{op: OperationSobel, want: Params{Operation: OperationSobel}},
		{op: OperationCanny, want: Params{Operation: OperationCanny, CannyLow: 100, CannyHigh: 200}},
		{op: OperationThreshold, want: Params{Operation: OperationThreshold, Threshold: 127}},
		{op: OperationKMeans, want: Params{Operation: OperationKMeans, Clusters: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DefaultParams(tt.op)); diff != "" {
				t.Errorf("DefaultParams(%v) mismatch (-want +got):\n%s", tt.op, diff)
			}
			assert.NoError(t, DefaultParams(tt.op).Validate())
		})
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"threshold low edge", Params{Operation: OperationThreshold, Threshold: 0}, false},
		{"threshold high edge", Params{Operation: OperationThreshold, Threshold: 255}, false},
		{"threshold too high", Params{Operation: OperationThreshold, Threshold: 256}, true},
		{"canny negative", Params{Operation: OperationCanny, CannyLow: -1, CannyHigh: 20}, true},
		{"clusters too few", Params{Operation: OperationKMeans, Clusters: 1}, true},
		{"clusters max", Params{Operation: OperationKMeans, Clusters: 10}, false},
		{"clusters too many", Params{Operation: OperationKMeans, Clusters: 11}, true},
		{"sobel ignores fields", Params{Operation: OperationSobel, Threshold: 999}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidParams))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range append([]Operation{OperationNone}, Operations...) {
		got, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	got, err := ParseOperation(" kmeans ")
	require.NoError(t, err)
	assert.Equal(t, OperationKMeans, got)

	_, err = ParseOperation("laplacian")
	assert.Error(t, err)
}

func TestHasParameters(t *testing.T) {
	assert.False(t, OperationNone.HasParameters())
	assert.False(t, OperationSobel.HasParameters())
	assert.True(t, OperationCanny.HasParameters())
	assert.True(t, OperationThreshold.HasParameters())
	assert.True(t, OperationKMeans.HasParameters())
}

func TestParamsGetSet(t *testing.T) {
	p := DefaultParams(OperationCanny)
	require.NoError(t, p.Set(ParamCannyLow, 12))
	require.NoError(t, p.Set(ParamCannyHigh, 34))

	low, err := p.Get(ParamCannyLow)
	require.NoError(t, err)
	assert.Equal(t, 12, low)
	high, err := p.Get(ParamCannyHigh)
	require.NoError(t, err)
	assert.Equal(t, 34, high)

	assert.Error(t, p.Set("sigma", 1))
	_, err = p.Get("sigma")
	assert.Error(t, err)
}
