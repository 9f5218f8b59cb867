package ports

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// TableSourcePort opens a file holding one table.
// The caller owns the returned table and must Release it.
type TableSourcePort interface {
	Open(ctx context.Context, path string) (arrow.Table, error)
}
