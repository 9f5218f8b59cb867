package ports

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// TableSinkPort writes a table to a file; the table stays owned by the caller
type TableSinkPort interface {
	Write(ctx context.Context, path string, tbl arrow.Table) error
}
