package metrics

import (
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

var errGeometryMismatch = errors.New("frame geometry mismatch")

// Mean is the average intensity of the processed frame.
type Mean struct{}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Calculate(_, processed gocv.Mat) (float64, error) {
	px, err := intensities(processed)
	if err != nil {
		return 0, err
	}
	return stat.Mean(px, nil), nil
}

func (m *Mean) GetName() string        { return "Mean" }
func (m *Mean) GetDescription() string { return "Mean intensity of the processed frame" }
func (m *Mean) GetFormat() string      { return "%.1f" }

// StdDev is the intensity spread of the processed frame.
type StdDev struct{}

func NewStdDev() *StdDev { return &StdDev{} }

func (s *StdDev) Calculate(_, processed gocv.Mat) (float64, error) {
	px, err := intensities(processed)
	if err != nil {
		return 0, err
	}
	_, std := stat.MeanStdDev(px, nil)
	if math.IsNaN(std) {
		return 0, nil
	}
	return std, nil
}

func (s *StdDev) GetName() string        { return "Std" }
func (s *StdDev) GetDescription() string { return "Intensity standard deviation of the processed frame" }
func (s *StdDev) GetFormat() string      { return "%.1f" }

// Coverage is the percentage of non-zero pixels, i.e. edge density for
// edge maps and foreground share for binary masks.
type Coverage struct{}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Calculate(_, processed gocv.Mat) (float64, error) {
	gray, err := grayscale(processed)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	total := gray.Rows() * gray.Cols()
	return 100 * float64(gocv.CountNonZero(gray)) / float64(total), nil
}

func (c *Coverage) GetName() string        { return "Coverage" }
func (c *Coverage) GetDescription() string { return "Percentage of non-zero pixels" }
func (c *Coverage) GetFormat() string      { return "%.1f%%" }

// PSNR compares the processed frame against the grayscale original.
type PSNR struct{}

func NewPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return 0, errGeometryMismatch
	}

	a, err := intensities(original)
	if err != nil {
		return 0, err
	}
	b, err := intensities(processed)
	if err != nil {
		return 0, err
	}

	sq := make([]float64, len(a))
	for i := range a {
		d := a[i] - b[i]
		sq[i] = d * d
	}
	mse := stat.Mean(sq, nil)
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(255/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string        { return "PSNR" }
func (p *PSNR) GetDescription() string { return "Peak signal-to-noise ratio against the original, in dB" }
func (p *PSNR) GetFormat() string      { return "%.1fdB" }

// grayscale returns a single-channel copy the caller must close.
func grayscale(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), errors.New("empty frame")
	}

	gray := gocv.NewMat()
	switch input.Channels() {
	case 1:
		input.CopyTo(&gray)
	case 3:
		gocv.CvtColor(input, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(input, &gray, gocv.ColorBGRAToGray)
	default:
		gray.Close()
		return gocv.NewMat(), errors.Errorf("unsupported channel count %d", input.Channels())
	}
	return gray, nil
}

func intensities(input gocv.Mat) ([]float64, error) {
	gray, err := grayscale(input)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	data, err := gray.DataPtrUint8()
	if err != nil {
		return nil, errors.Wrap(err, "read pixels")
	}

	px := make([]float64, len(data))
	for i, v := range data {
		px[i] = float64(v)
	}
	return px, nil
}
