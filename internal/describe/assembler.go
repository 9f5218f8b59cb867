package describe

import (
	"context"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/sync/errgroup"

	"arrowview/domain/columnar"
	"arrowview/domain/report"
	"arrowview/domain/stats"
	"arrowview/internal"
)

// Assembler runs the engine over every numeric column of a table and
// lays the results out as a ReportGrid.
type Assembler struct {
	engine  *Engine
	workers int
	logger  *internal.Logger
}

// NewAssembler creates an assembler. workers below 1 means sequential.
func NewAssembler(engine *Engine, workers int, logger *internal.Logger) *Assembler {
	if workers < 1 {
		workers = 1
	}
	return &Assembler{engine: engine, workers: workers, logger: logger}
}

// Build describes the numeric columns of tbl. Columns are computed
// concurrently; each worker owns one grid column, so the grid keeps
// schema order whatever the completion order. The first failure cancels
// the rest and no grid is returned.
func (a *Assembler) Build(ctx context.Context, tbl arrow.Table) (*stats.ReportGrid, error) {
	refs := columnar.SelectNumericFields(tbl.Schema().Fields())
	grid := stats.NewReportGrid(refs.Names())

	a.logger.Debug("[describe] %d of %d columns are numeric", len(refs), tbl.NumCols())
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := a.engine.Describe(ref.Field.Name, tbl.Column(ref.SourceIndex).Data())
			if err != nil {
				return err
			}
			return grid.SetColumn(i, row)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("[describe] %d columns described in %.2fms with %d workers",
		len(refs), float64(time.Since(startTime).Nanoseconds())/1e6, a.workers)
	return grid, nil
}

// Report builds the grid and converts it to a renderable table whose
// first header cell is blank above the statistic labels.
func (a *Assembler) Report(ctx context.Context, tbl arrow.Table) (report.Table, error) {
	grid, err := a.Build(ctx, tbl)
	if err != nil {
		return report.Table{}, err
	}
	return ToTable(grid), nil
}

// ToTable converts a grid to a report table
func ToTable(grid *stats.ReportGrid) report.Table {
	header := make([]string, 0, grid.NumColumns()+1)
	header = append(header, "")
	header = append(header, grid.Header...)
	return report.Table{
		Kind:   report.KindDescribe,
		Header: header,
		Rows:   grid.Rows(),
	}
}
