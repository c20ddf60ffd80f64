package algorithms

import (
	"gocv.io/x/gocv"

	"edge-segmentation/internal/core"
)

// SobelKernelSize is the aperture passed to the Sobel operator.
const SobelKernelSize = 3

// Identity returns the frame unchanged.
type Identity struct{}

func NewIdentity() *Identity {
	return &Identity{}
}

func (i *Identity) Apply(input gocv.Mat, _ core.Params) (gocv.Mat, error) {
	return input.Clone(), nil
}

func (i *Identity) GetName() string                  { return "None" }
func (i *Identity) GetDescription() string           { return "Shows the frame unchanged" }
func (i *Identity) Validate(core.Params) error       { return nil }
func (i *Identity) GetParameterInfo() []ParameterInfo { return nil }

// Sobel computes the gradient magnitude of the intensity image.
type Sobel struct{}

func NewSobel() *Sobel {
	return &Sobel{}
}

func (s *Sobel) Apply(input gocv.Mat, _ core.Params) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	gradX := gocv.NewMat()
	defer gradX.Close()
	gradY := gocv.NewMat()
	defer gradY.Close()
	magnitude := gocv.NewMat()
	defer magnitude.Close()

	gocv.Sobel(gray, &gradX, gocv.MatTypeCV64F, 1, 0, SobelKernelSize, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &gradY, gocv.MatTypeCV64F, 0, 1, SobelKernelSize, 1, 0, gocv.BorderDefault)
	gocv.Magnitude(gradX, gradY, &magnitude)

	output := gocv.NewMat()
	gocv.ConvertScaleAbs(magnitude, &output, 1, 0)
	return output, nil
}

func (s *Sobel) GetName() string {
	return "Sobel Edge Detection"
}

func (s *Sobel) GetDescription() string {
	return "Gradient magnitude of horizontal and vertical Sobel derivatives"
}

func (s *Sobel) Validate(core.Params) error {
	return nil
}

func (s *Sobel) GetParameterInfo() []ParameterInfo {
	return nil
}

// Canny runs the two-threshold hysteresis edge detector.
type Canny struct{}

func NewCanny() *Canny {
	return &Canny{}
}

func (c *Canny) Apply(input gocv.Mat, params core.Params) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	output := gocv.NewMat()
	gocv.Canny(gray, &output, float32(params.CannyLow), float32(params.CannyHigh))
	return output, nil
}

func (c *Canny) GetName() string {
	return "Canny Edge Detection"
}

func (c *Canny) GetDescription() string {
	return "Hysteresis edge detector with lower and upper thresholds"
}

func (c *Canny) Validate(params core.Params) error {
	return params.Validate()
}

func (c *Canny) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        core.ParamCannyLow,
			Label:       "Threshold1",
			Min:         core.MinIntensity,
			Max:         core.MaxIntensity,
			Default:     core.DefaultCannyLow,
			Description: "Lower hysteresis threshold",
		},
		{
			Name:        core.ParamCannyHigh,
			Label:       "Threshold2",
			Min:         core.MinIntensity,
			Max:         core.MaxIntensity,
			Default:     core.DefaultCannyHigh,
			Description: "Upper hysteresis threshold",
		},
	}
}
