package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	domainstats "arrowview/domain/stats"
)

// Interpolation selects how a quantile between two data points is resolved
type Interpolation int

const (
	// Linear interpolates between the two closest ranks (Hyndman-Fan type 7)
	Linear Interpolation = iota
	// Nearest picks the lowest value whose empirical CDF reaches p
	Nearest
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("interpolation(%d)", int(i))
}

// ParseInterpolation accepts "linear" or "nearest"
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "nearest":
		return Nearest, nil
	}
	return Linear, fmt.Errorf("unknown quantile interpolation %q", s)
}

// StatsEngine aggregates Arrow columns with montanaflynn/stats and gonum;
// rounding goes through shopspring/decimal
type StatsEngine struct {
	interpolation Interpolation
}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine(interpolation Interpolation) *StatsEngine {
	return &StatsEngine{interpolation: interpolation}
}

// Interpolation reports the configured quantile method
func (e *StatsEngine) Interpolation() Interpolation {
	return e.interpolation
}

// Mean returns the arithmetic mean, or null for a column without values
func (e *StatsEngine) Mean(col *arrow.Chunked) (domainstats.Scalar, error) {
	data, err := Float64Values(col)
	if err != nil {
		return domainstats.NullScalar, err
	}
	if len(data) == 0 {
		return domainstats.NullScalar, nil
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return domainstats.NullScalar, err
	}
	return domainstats.NewScalar(mean), nil
}

// Stddev returns the population standard deviation (ddof = 0)
func (e *StatsEngine) Stddev(col *arrow.Chunked) (domainstats.Scalar, error) {
	data, err := Float64Values(col)
	if err != nil {
		return domainstats.NullScalar, err
	}
	if len(data) == 0 {
		return domainstats.NullScalar, nil
	}

	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return domainstats.NullScalar, err
	}
	return domainstats.NewScalar(stdDev), nil
}

// Quantile sorts the column once and answers every probability from it.
// NaN values are ignored like nulls.
func (e *StatsEngine) Quantile(col *arrow.Chunked, probabilities []float64) ([]domainstats.Scalar, error) {
	for _, p := range probabilities {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("quantile probability %v outside [0, 1]", p)
		}
	}

	data, err := Float64Values(col)
	if err != nil {
		return nil, err
	}
	sorted := slices.DeleteFunc(data, math.IsNaN)
	slices.Sort(sorted)

	out := make([]domainstats.Scalar, len(probabilities))
	if len(sorted) == 0 {
		return out, nil
	}

	for i, p := range probabilities {
		switch e.interpolation {
		case Nearest:
			out[i] = domainstats.NewScalar(stat.Quantile(p, stat.Empirical, sorted, nil))
		default:
			out[i] = domainstats.NewScalar(linearQuantile(sorted, p))
		}
	}
	return out, nil
}

// Round rounds half to even (2.0625 -> 2.062); null, NaN and infinite
// values pass through
func (e *StatsEngine) Round(s domainstats.Scalar, places int) domainstats.Scalar {
	if !s.Valid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return s
	}
	rounded, _ := decimal.NewFromFloat(s.Value).RoundBank(int32(places)).Float64()
	return domainstats.NewScalar(rounded)
}

// linearQuantile expects sorted, non-empty input
func linearQuantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	v := sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
	return math.Min(v, sorted[i+1])
}
