// Processing selection and its parameters
package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Operation is the currently active image-processing mode.
type Operation int

const (
	OperationNone Operation = iota
	OperationSobel
	OperationCanny
	OperationThreshold
	OperationKMeans
)

// Operations lists the selectable operations in menu order.
var Operations = []Operation{
	OperationSobel,
	OperationCanny,
	OperationThreshold,
	OperationKMeans,
}

var operationNames = map[Operation]string{
	OperationNone:      "None",
	OperationSobel:     "Sobel",
	OperationCanny:     "Canny",
	OperationThreshold: "Threshold",
	OperationKMeans:    "KMeans",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Label is the menu text for the operation.
func (o Operation) Label() string {
	switch o {
	case OperationSobel:
		return "Sobel Edge Detection"
	case OperationCanny:
		return "Canny Edge Detection"
	case OperationThreshold:
		return "Thresholding"
	case OperationKMeans:
		return "K-Means Clustering"
	}
	return "None"
}

// HasParameters reports whether the operation exposes on-screen controls.
func (o Operation) HasParameters() bool {
	return o == OperationCanny || o == OperationThreshold || o == OperationKMeans
}

// ParseOperation is the inverse of String, case-insensitive.
func ParseOperation(s string) (Operation, error) {
	for op, name := range operationNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return op, nil
		}
	}
	return OperationNone, errors.Errorf("unknown operation %q", s)
}

// Parameter ranges exposed by the controls.
const (
	MinIntensity = 0
	MaxIntensity = 255
	MinClusters  = 2
	MaxClusters  = 10

	DefaultCannyLow  = 100
	DefaultCannyHigh = 200
	DefaultThreshold = 127
	DefaultClusters  = 3
)

// ErrInvalidParams is returned when a parameter is outside its range.
var ErrInvalidParams = errors.New("invalid operation parameters")

// Params carries the values of the controls for one operation. Only the
// fields belonging to Operation are meaningful; the rest stay zero.
type Params struct {
	Operation Operation
	CannyLow  int
	CannyHigh int
	Threshold int
	Clusters  int
}

// DefaultParams returns fresh parameters for op. Fields of other operations
// are left zero so nothing carries over between selections.
func DefaultParams(op Operation) Params {
	p := Params{Operation: op}
	switch op {
	case OperationCanny:
		p.CannyLow = DefaultCannyLow
		p.CannyHigh = DefaultCannyHigh
	case OperationThreshold:
		p.Threshold = DefaultThreshold
	case OperationKMeans:
		p.Clusters = DefaultClusters
	}
	return p
}

// Validate checks the fields used by p.Operation.
func (p Params) Validate() error {
	switch p.Operation {
	case OperationCanny:
		if !inRange(p.CannyLow, MinIntensity, MaxIntensity) || !inRange(p.CannyHigh, MinIntensity, MaxIntensity) {
			return errors.Wrapf(ErrInvalidParams, "canny thresholds %d/%d outside [%d,%d]",
				p.CannyLow, p.CannyHigh, MinIntensity, MaxIntensity)
		}
	case OperationThreshold:
		if !inRange(p.Threshold, MinIntensity, MaxIntensity) {
			return errors.Wrapf(ErrInvalidParams, "threshold %d outside [%d,%d]",
				p.Threshold, MinIntensity, MaxIntensity)
		}
	case OperationKMeans:
		if !inRange(p.Clusters, MinClusters, MaxClusters) {
			return errors.Wrapf(ErrInvalidParams, "cluster count %d outside [%d,%d]",
				p.Clusters, MinClusters, MaxClusters)
		}
	}
	return nil
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// Parameter names used by the controls.
const (
	ParamCannyLow  = "threshold1"
	ParamCannyHigh = "threshold2"
	ParamThreshold = "threshold"
	ParamClusters  = "k"
)

// Get returns the named parameter value.
func (p Params) Get(name string) (int, error) {
	switch name {
	case ParamCannyLow:
		return p.CannyLow, nil
	case ParamCannyHigh:
		return p.CannyHigh, nil
	case ParamThreshold:
		return p.Threshold, nil
	case ParamClusters:
		return p.Clusters, nil
	}
	return 0, errors.Errorf("unknown parameter %q", name)
}

// Set assigns the named parameter value.
func (p *Params) Set(name string, value int) error {
	switch name {
	case ParamCannyLow:
		p.CannyLow = value
	case ParamCannyHigh:
		p.CannyHigh = value
	case ParamThreshold:
		p.Threshold = value
	case ParamClusters:
		p.Clusters = value
	default:
		return errors.Errorf("unknown parameter %q", name)
	}
	return nil
}
