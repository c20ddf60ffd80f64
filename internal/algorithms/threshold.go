package algorithms

import (
	"gocv.io/x/gocv"

	"edge-segmentation/internal/core"
)

// BinaryThreshold maps intensities >= cutoff to 255 and the rest to 0.
type BinaryThreshold struct{}

func NewBinaryThreshold() *BinaryThreshold {
	return &BinaryThreshold{}
}

func (b *BinaryThreshold) Apply(input gocv.Mat, params core.Params) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	// OpenCV keeps pixels strictly above thresh; on 8-bit data "> v-1" is ">= v".
	// A negative thresh sets every pixel, which is the v=0 case.
	output := gocv.NewMat()
	gocv.Threshold(gray, &output, float32(params.Threshold-1), core.MaxIntensity, gocv.ThresholdBinary)
	return output, nil
}

func (b *BinaryThreshold) GetName() string {
	return "Thresholding"
}

func (b *BinaryThreshold) GetDescription() string {
	return "Binarizes the intensity image at a fixed cutoff"
}

func (b *BinaryThreshold) Validate(params core.Params) error {
	return params.Validate()
}

func (b *BinaryThreshold) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        core.ParamThreshold,
			Label:       "Threshold Value",
			Min:         core.MinIntensity,
			Max:         core.MaxIntensity,
			Default:     core.DefaultThreshold,
			Description: "Pixels at or above this intensity become white",
		},
	}
}
