package app

import (
	"context"
	stderrors "errors"
	"time"

	"arrowview/domain/core"
	"arrowview/domain/report"
	"arrowview/internal"
	"arrowview/internal/describe"
	"arrowview/internal/errors"
	"arrowview/internal/preview"
	"arrowview/ports"
)

// ViewerService opens a table file and builds the requested views
type ViewerService struct {
	source    ports.TableSourcePort
	assembler *describe.Assembler
	exporter  ports.ExporterPort
	logger    *internal.Logger
}

// ViewRequest selects the views for one file. Views are always produced
// in the order info, head, describe.
type ViewRequest struct {
	Path       string
	Info       bool
	Head       bool
	HeadRows   int
	Describe   bool
	ExportPath string // optional .xlsx destination
}

// ViewResult holds the finished reports
type ViewResult struct {
	Tables    []report.Table
	Rows      int64
	Columns   int64
	RuntimeMs int64
}

// NewViewerService creates a viewer. exporter may be nil when export is not used.
func NewViewerService(source ports.TableSourcePort, assembler *describe.Assembler, exporter ports.ExporterPort, logger *internal.Logger) *ViewerService {
	return &ViewerService{
		source:    source,
		assembler: assembler,
		exporter:  exporter,
		logger:    logger,
	}
}

// View builds every requested report or none: the first failure is
// returned and no partial result is produced.
func (s *ViewerService) View(ctx context.Context, req ViewRequest) (*ViewResult, error) {
	startTime := time.Now()

	if !req.Info && !req.Head && !req.Describe {
		return nil, errors.InvalidInput("no view requested")
	}
	if req.ExportPath != "" && s.exporter == nil {
		return nil, errors.InternalError("export requested without an exporter")
	}

	tbl, err := s.source.Open(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer tbl.Release()
	s.logger.Info("opened %s: %d rows, %d columns", req.Path, tbl.NumRows(), tbl.NumCols())

	result := &ViewResult{Rows: tbl.NumRows(), Columns: tbl.NumCols()}

	if req.Info {
		result.Tables = append(result.Tables, preview.Info(tbl))
	}
	if req.Head {
		head, err := preview.Head(tbl, req.HeadRows)
		if err != nil {
			return nil, err
		}
		result.Tables = append(result.Tables, head)
	}
	if req.Describe {
		desc, err := s.assembler.Report(ctx, tbl)
		if err != nil {
			code := errors.CodeComputeError
			if stderrors.Is(err, core.ErrUnsupportedType) {
				code = errors.CodeUnsupportedType
			}
			return nil, errors.WithCode(code, errors.Wrapf(err, "describe %s", req.Path))
		}
		result.Tables = append(result.Tables, desc)
	}

	if req.ExportPath != "" {
		if err := s.exporter.Export(ctx, req.ExportPath, result.Tables); err != nil {
			return nil, err
		}
		s.logger.Info("exported %d reports to %s", len(result.Tables), req.ExportPath)
	}

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}
