// Processing operations backed by GoCV standard APIs
package algorithms

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"edge-segmentation/internal/core"
)

// ErrUnknownOperation is returned for an operation with no registered algorithm.
var ErrUnknownOperation = errors.New("unknown operation")

// Algorithm defines the interface for image processing algorithms
type Algorithm interface {
	Apply(input gocv.Mat, params core.Params) (gocv.Mat, error)
	GetName() string
	GetDescription() string
	Validate(params core.Params) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes an integer parameter for UI generation
type ParameterInfo struct {
	Name        string
	Label       string
	Min         int
	Max         int
	Default     int
	Description string
}

var algorithms = make(map[core.Operation]Algorithm)

func Register(op core.Operation, algorithm Algorithm) {
	algorithms[op] = algorithm
}

func Get(op core.Operation) (Algorithm, bool) {
	algorithm, exists := algorithms[op]
	return algorithm, exists
}

// Apply runs the algorithm registered for op. The result is a new Mat owned
// by the caller; input is not modified.
func Apply(op core.Operation, input gocv.Mat, params core.Params) (gocv.Mat, error) {
	algorithm, exists := algorithms[op]
	if !exists {
		return gocv.NewMat(), errors.Wrapf(ErrUnknownOperation, "%v", op)
	}

	if input.Empty() {
		return gocv.NewMat(), core.ErrNoImageLoaded
	}

	if params.Operation != op {
		return gocv.NewMat(), errors.Wrapf(core.ErrInvalidParams, "parameters for %v passed to %v", params.Operation, op)
	}

	if err := algorithm.Validate(params); err != nil {
		return gocv.NewMat(), err
	}

	return algorithm.Apply(input, params)
}

// ParameterInfoFor returns the controls op exposes, or nil.
func ParameterInfoFor(op core.Operation) []ParameterInfo {
	algorithm, exists := algorithms[op]
	if !exists {
		return nil
	}
	return algorithm.GetParameterInfo()
}

// Invoker applies the current selection and logs how long it took.
type Invoker struct {
	logger *logrus.Logger
}

func NewInvoker(logger *logrus.Logger) *Invoker {
	return &Invoker{logger: logger}
}

// Apply processes frame with op and params.
func (inv *Invoker) Apply(frame gocv.Mat, op core.Operation, params core.Params) (gocv.Mat, error) {
	start := time.Now()
	out, err := Apply(op, frame, params)
	fields := logrus.Fields{
		"operation": op.String(),
		"duration":  time.Since(start),
		"width":     frame.Cols(),
		"height":    frame.Rows(),
	}
	if err != nil {
		inv.logger.WithFields(fields).WithError(err).Error("Processing failed")
		return out, err
	}

	inv.logger.WithFields(fields).Debug("Processing complete")
	return out, nil
}

func init() {
	Register(core.OperationNone, NewIdentity())
	Register(core.OperationSobel, NewSobel())
	Register(core.OperationCanny, NewCanny())
	Register(core.OperationThreshold, NewBinaryThreshold())
	Register(core.OperationKMeans, NewKMeans())
}
