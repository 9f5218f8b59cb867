package ports

import (
	"context"

	"arrowview/domain/report"
)

// ExporterPort persists finished reports outside the terminal
type ExporterPort interface {
	Export(ctx context.Context, path string, tables []report.Table) error
}
