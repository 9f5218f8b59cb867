package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrUnknownFormat = errors.New("unrecognized table format")
	ErrEmptySchema   = errors.New("table has no fields")

	// Computation errors
	ErrUnsupportedType = errors.New("unsupported column type")
	ErrComputeFailed   = errors.New("statistic computation failed")
	ErrShapeMismatch   = errors.New("unexpected result shape")
)

// NewComputeError wraps a failing statistic for one column
func NewComputeError(statistic string, column string, err error) error {
	return fmt.Errorf("%w: %s of column %q: %w", ErrComputeFailed, statistic, column, err)
}

func IsComputeError(err error) bool {
	return errors.Is(err, ErrComputeFailed) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrShapeMismatch)
}
