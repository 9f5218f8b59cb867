package describe

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"

	"arrowview/domain/core"
	"arrowview/domain/stats"
	"arrowview/ports"
)

// Options is fixed once per report and shared read-only by every worker
type Options struct {
	Precision     int
	Probabilities [5]float64
}

// DefaultOptions rounds to 3 places and asks for min, quartiles and max
func DefaultOptions() Options {
	return Options{
		Precision:     3,
		Probabilities: [5]float64{0, 0.25, 0.5, 0.75, 1},
	}
}

// Engine computes the eight descriptive statistics of one column
type Engine struct {
	compute ports.ComputePort
	opts    Options
}

// NewEngine creates an engine over the given compute provider
func NewEngine(compute ports.ComputePort, opts Options) *Engine {
	return &Engine{compute: compute, opts: opts}
}

// Describe fills every statistic for col or fails as a whole.
// name is only used for error context.
func (e *Engine) Describe(name string, col *arrow.Chunked) (stats.DescriptiveRow, error) {
	var row stats.DescriptiveRow
	row.Set(stats.Count, strconv.Itoa(col.Len()-col.NullN()))

	mean, err := e.compute.Mean(col)
	if err != nil {
		return stats.DescriptiveRow{}, core.NewComputeError("mean", name, err)
	}
	row.Set(stats.Mean, e.compute.Round(mean, e.opts.Precision).String())

	std, err := e.compute.Stddev(col)
	if err != nil {
		return stats.DescriptiveRow{}, core.NewComputeError("std", name, err)
	}
	row.Set(stats.Std, e.compute.Round(std, e.opts.Precision).String())

	// one batched call for all five order statistics
	quantiles, err := e.compute.Quantile(col, e.opts.Probabilities[:])
	if err != nil {
		return stats.DescriptiveRow{}, core.NewComputeError("quantile", name, err)
	}
	if len(quantiles) != len(stats.QuantileKinds) {
		return stats.DescriptiveRow{}, core.NewComputeError("quantile", name,
			fmt.Errorf("%w: got %d values, want %d", core.ErrShapeMismatch, len(quantiles), len(stats.QuantileKinds)))
	}
	for i, kind := range stats.QuantileKinds {
		row.Set(kind, e.compute.Round(quantiles[i], e.opts.Precision).String())
	}
	return row, nil
}
