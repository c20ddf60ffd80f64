package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func flat(t *testing.T, v float64, channels gocv.MatType) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), 8, 10, channels)
	t.Cleanup(func() { m.Close() })
	return m
}

func halfMask(t *testing.T) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(8, 10, gocv.MatTypeCV8UC1)
	t.Cleanup(func() { m.Close() })
	data, err := m.DataPtrUint8()
	require.NoError(t, err)
	for i := range data {
		if i%10 < 5 {
			data[i] = 255
		} else {
			data[i] = 0
		}
	}
	return m
}

func TestMeanAndStd(t *testing.T) {
	e := NewEvaluator()
	mask := halfMask(t)

	mean, err := e.Calculate("mean", mask, mask)
	require.NoError(t, err)
	assert.InDelta(t, 127.5, mean, 1e-9)

	std, err := e.Calculate("std", mask, mask)
	require.NoError(t, err)
	// Sample standard deviation: 127.5 * sqrt(80/79).
	assert.InDelta(t, 128.3, std, 0.05)

	std, err = e.Calculate("std", mask, flat(t, 40, gocv.MatTypeCV8UC3))
	require.NoError(t, err)
	assert.Zero(t, std)
}

func TestCoverage(t *testing.T) {
	e := NewEvaluator()

	v, err := e.Calculate("nonzero", halfMask(t), halfMask(t))
	require.NoError(t, err)
	assert.InDelta(t, 50, v, 1e-9)

	v, err = e.Calculate("nonzero", halfMask(t), flat(t, 0, gocv.MatTypeCV8UC1))
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestPSNR(t *testing.T) {
	e := NewEvaluator()
	a := flat(t, 100, gocv.MatTypeCV8UC3)

	v, err := e.Calculate("psnr", a, flat(t, 100, gocv.MatTypeCV8UC1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = e.Calculate("psnr", a, flat(t, 110, gocv.MatTypeCV8UC1))
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(25.5), v, 1e-6)

	other := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer other.Close()
	_, err = e.Calculate("psnr", a, other)
	assert.ErrorIs(t, err, errGeometryMismatch)
}

func TestUnknownMetric(t *testing.T) {
	m := gocv.NewMat()
	defer m.Close()
	_, err := NewEvaluator().Calculate("ssim", m, m)
	assert.Error(t, err)
}

func TestSummaryOrderAndEmptyFrames(t *testing.T) {
	e := NewEvaluator()
	assert.Equal(t, []string{"mean", "std", "nonzero", "psnr"}, e.Names())

	mask := halfMask(t)
	assert.Equal(t, "mean 127.5 std 128.3 nonzero 50.0% psnr +InfdB", e.Summary(mask, mask))

	empty := gocv.NewMat()
	defer empty.Close()
	assert.Empty(t, e.Summary(empty, empty))
}
