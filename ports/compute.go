package ports

import (
	"github.com/apache/arrow-go/v18/arrow"

	"arrowview/domain/stats"
)

// ComputePort aggregates one chunked column. Nulls are skipped; aggregating
// zero values yields a null scalar rather than an error.
type ComputePort interface {
	// Mean returns the arithmetic mean of the non-null values
	Mean(col *arrow.Chunked) (stats.Scalar, error)

	// Stddev returns the population standard deviation of the non-null values
	Stddev(col *arrow.Chunked) (stats.Scalar, error)

	// Quantile returns one value per requested probability, in request order
	Quantile(col *arrow.Chunked, probabilities []float64) ([]stats.Scalar, error)

	// Round rounds a scalar to the given decimal places, ties to even
	Round(s stats.Scalar, places int) stats.Scalar
}
