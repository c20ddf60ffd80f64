package algorithms

import (
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"edge-segmentation/internal/core"
)

const (
	kmeansMaxIterations = 100
	kmeansEpsilon       = 0.2
	kmeansAttempts      = 10
)

// KMeans replaces every pixel with the centroid colour of its cluster.
type KMeans struct{}

func NewKMeans() *KMeans {
	return &KMeans{}
}

func (k *KMeans) Apply(input gocv.Mat, params core.Params) (gocv.Mat, error) {
	bgr, err := toBGR(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer bgr.Close()

	rows, cols := bgr.Rows(), bgr.Cols()
	total := rows * cols
	if total < params.Clusters {
		return gocv.NewMat(), errors.Wrapf(core.ErrInvalidParams,
			"%d clusters requested for %d pixels", params.Clusters, total)
	}

	// One row per pixel, one float column per colour channel.
	samples := bgr.Reshape(1, total)
	defer samples.Close()
	data := gocv.NewMat()
	defer data.Close()
	samples.ConvertTo(&data, gocv.MatTypeCV32F)

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS|gocv.MaxIter, kmeansMaxIterations, kmeansEpsilon)
	gocv.KMeans(data, params.Clusters, &labels, criteria, kmeansAttempts, gocv.KMeansRandomCenters, &centers)

	if labels.Rows() != total || centers.Rows() != params.Clusters {
		return gocv.NewMat(), errors.Errorf("kmeans returned %d labels and %d centers", labels.Rows(), centers.Rows())
	}

	palette := make([][3]uint8, centers.Rows())
	for i := range palette {
		for c := 0; c < 3; c++ {
			palette[i][c] = saturateUint8(centers.GetFloatAt(i, c))
		}
	}

	output := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC3)
	pixels, err := output.DataPtrUint8()
	if err != nil {
		output.Close()
		return gocv.NewMat(), errors.Wrap(err, "access output pixels")
	}

	for i := 0; i < total; i++ {
		color := palette[labels.GetIntAt(i, 0)]
		copy(pixels[i*3:i*3+3], color[:])
	}

	return output, nil
}

func (k *KMeans) GetName() string {
	return "K-Means Clustering"
}

func (k *KMeans) GetDescription() string {
	return "Segments the frame into K flat colour regions"
}

func (k *KMeans) Validate(params core.Params) error {
	return params.Validate()
}

func (k *KMeans) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        core.ParamClusters,
			Label:       "Number of Clusters (K)",
			Min:         core.MinClusters,
			Max:         core.MaxClusters,
			Default:     core.DefaultClusters,
			Description: "How many colours the segmented image keeps",
		},
	}
}

func saturateUint8(v float32) uint8 {
	r := math.Round(float64(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
