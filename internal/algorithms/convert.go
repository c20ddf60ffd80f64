package algorithms

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// toGray returns a single-channel copy of input. The caller closes it.
func toGray(input gocv.Mat) (gocv.Mat, error) {
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
		return gocv.NewMat(), errors.Errorf("unsupported channel count for grayscale conversion: %d", input.Channels())
	}
	return gray, nil
}

// toBGR returns a 3-channel copy of input. The caller closes it.
func toBGR(input gocv.Mat) (gocv.Mat, error) {
	bgr := gocv.NewMat()
	switch input.Channels() {
	case 1:
		gocv.CvtColor(input, &bgr, gocv.ColorGrayToBGR)
	case 3:
		input.CopyTo(&bgr)
	case 4:
		gocv.CvtColor(input, &bgr, gocv.ColorBGRAToBGR)
	default:
		bgr.Close()
		return gocv.NewMat(), errors.Errorf("unsupported channel count for BGR conversion: %d", input.Channels())
	}
	return bgr, nil
}
