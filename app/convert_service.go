package app

import (
	"context"

	"arrowview/internal"
	"arrowview/ports"
)

// ConvertService re-encodes a table file, e.g. CSV into an Arrow IPC file
type ConvertService struct {
	source ports.TableSourcePort
	sink   ports.TableSinkPort
	logger *internal.Logger
}

// NewConvertService creates a converter from source to sink
func NewConvertService(source ports.TableSourcePort, sink ports.TableSinkPort, logger *internal.Logger) *ConvertService {
	return &ConvertService{source: source, sink: sink, logger: logger}
}

// Convert reads src and writes it to dst, returning the number of rows
func (s *ConvertService) Convert(ctx context.Context, src, dst string) (int64, error) {
	tbl, err := s.source.Open(ctx, src)
	if err != nil {
		return 0, err
	}
	defer tbl.Release()

	if err := s.sink.Write(ctx, dst, tbl); err != nil {
		return 0, err
	}
	s.logger.Info("converted %s -> %s (%d rows)", src, dst, tbl.NumRows())
	return tbl.NumRows(), nil
}
