// Statistics of a processed frame, shown in the status line
package metrics

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Metric computes one statistic from an original frame and its processed
// counterpart. Both must have the same geometry.
type Metric interface {
	Calculate(original, processed gocv.Mat) (float64, error)
	GetName() string
	GetDescription() string
	GetFormat() string
}

// Evaluator holds metrics in display order.
type Evaluator struct {
	metrics map[string]Metric
	order   []string
}

func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mean", NewMean())
	e.Register("std", NewStdDev())
	e.Register("nonzero", NewCoverage())
	e.Register("psnr", NewPSNR())
}

func (e *Evaluator) Register(name string, metric Metric) {
	if _, exists := e.metrics[name]; !exists {
		e.order = append(e.order, name)
	}
	e.metrics[name] = metric
}

// Calculate runs a single named metric.
func (e *Evaluator) Calculate(name string, original, processed gocv.Mat) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, errors.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(original, processed)
}

// CalculateAll runs every metric; failing metrics are left out.
func (e *Evaluator) CalculateAll(original, processed gocv.Mat) map[string]float64 {
	results := make(map[string]float64, len(e.metrics))
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(original, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// Summary formats every metric that could be computed, in registration order.
func (e *Evaluator) Summary(original, processed gocv.Mat) string {
	values := e.CalculateAll(original, processed)

	parts := make([]string, 0, len(values))
	for _, name := range e.order {
		v, ok := values[name]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s "+e.metrics[name].GetFormat(), name, v))
	}
	return strings.Join(parts, " ")
}

// Names lists registered metrics in display order.
func (e *Evaluator) Names() []string {
	return append([]string(nil), e.order...)
}
