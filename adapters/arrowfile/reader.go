package arrowfile

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"arrowview/adapters/excel"
	"arrowview/domain/core"
	"arrowview/internal"
	"arrowview/internal/errors"
)

// Format identifies the on-disk table encoding
type Format int

const (
	FormatUnknown Format = iota
	FormatIPCFile
	FormatIPCStream
	FormatParquet
	FormatCSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatIPCFile:
		return "arrow-file"
	case FormatIPCStream:
		return "arrow-stream"
	case FormatParquet:
		return "parquet"
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

var (
	arrowMagic   = []byte("ARROW1")
	parquetMagic = []byte("PAR1")
	// IPC streams since format 0.15 open with a continuation marker
	streamMarker = []byte{0xff, 0xff, 0xff, 0xff}
)

// DetectFormat decides the encoding from the leading bytes, falling back to
// the file extension for text formats. A trailing .zst is ignored.
func DetectFormat(path string, head []byte) Format {
	switch {
	case bytes.HasPrefix(head, arrowMagic):
		return FormatIPCFile
	case bytes.HasPrefix(head, parquetMagic):
		return FormatParquet
	case bytes.HasPrefix(head, streamMarker):
		return FormatIPCStream
	}

	switch strings.ToLower(filepath.Ext(trimZstd(path))) {
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	case ".arrows", ".stream":
		return FormatIPCStream
	}
	return FormatUnknown
}

type source interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

// Reader opens Arrow IPC (file or stream), Parquet, CSV and .xlsx files
// as one in-memory arrow.Table.
type Reader struct {
	mem    memory.Allocator
	logger *internal.Logger
	sheet  excel.ReaderConfig
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithAllocator sets the allocator used for every buffer of the table
func WithAllocator(mem memory.Allocator) ReaderOption {
	return func(r *Reader) { r.mem = mem }
}

// WithLogger sets the logger for timing diagnostics
func WithLogger(logger *internal.Logger) ReaderOption {
	return func(r *Reader) { r.logger = logger }
}

// WithSheet selects the worksheet read from .xlsx inputs
func WithSheet(name string) ReaderOption {
	return func(r *Reader) { r.sheet.Sheet = name }
}

// NewReader creates a reader backed by the Go allocator unless overridden
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{mem: memory.DefaultAllocator, sheet: excel.DefaultReaderConfig()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open reads the whole file at path. The caller releases the table.
func (r *Reader) Open(ctx context.Context, path string) (arrow.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path)
		}
		return nil, errors.IOError(fmt.Sprintf("cannot stat %q", path), err)
	}

	startTime := time.Now()
	src, closeFn, err := r.openSource(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	head := make([]byte, 8)
	n, _ := src.ReadAt(head, 0)
	format := DetectFormat(path, head[:n])
	r.logger.Debug("[arrowfile] %s detected as %s", path, format)

	var tbl arrow.Table
	switch format {
	case FormatIPCFile:
		tbl, err = r.readIPCFile(src)
	case FormatParquet:
		tbl, err = pqarrow.ReadTable(ctx, src, parquet.NewReaderProperties(r.mem),
			pqarrow.ArrowReadProperties{Parallel: true, BatchSize: 64 * 1024}, r.mem)
	case FormatCSV:
		tbl, err = r.readCSV(src)
	case FormatXLSX:
		tbl, err = excel.NewSheetReader(r.sheet, r.mem, r.logger).ReadTable(src)
	case FormatIPCStream:
		tbl, err = r.readIPCStream(src)
	default:
		tbl, err = r.readIPCStream(src)
		if err != nil {
			err = fmt.Errorf("%w: %s", core.ErrUnknownFormat, path)
		}
	}
	if err != nil {
		if stderrors.Is(err, core.ErrUnknownFormat) || stderrors.Is(err, core.ErrEmptySchema) {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return nil, errors.IOError(fmt.Sprintf("failed to read %s file %q", format, path), err)
	}

	r.logger.Debug("[arrowfile] %s loaded in %.2fms (%d columns, %d rows)",
		path, float64(time.Since(startTime).Nanoseconds())/1e6, tbl.NumCols(), tbl.NumRows())
	return tbl, nil
}

func (r *Reader) openSource(path string) (source, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.IOError(fmt.Sprintf("cannot open %q", path), err)
	}
	if !isZstdPath(path) {
		return f, func() { f.Close() }, nil
	}
	defer f.Close()

	data, err := decompressZstd(f)
	if err != nil {
		return nil, nil, errors.IOError(fmt.Sprintf("cannot decompress %q", path), err)
	}
	return bytes.NewReader(data), func() {}, nil
}

func (r *Reader) readIPCFile(src source) (arrow.Table, error) {
	fr, err := ipc.NewFileReader(src, ipc.WithAllocator(r.mem))
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	recs := make([]arrow.Record, 0, fr.NumRecords())
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.RecordAt(i)
		if err != nil {
			return nil, fmt.Errorf("record batch %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return array.NewTableFromRecords(fr.Schema(), recs), nil
}

func (r *Reader) readIPCStream(src io.Reader) (arrow.Table, error) {
	rdr, err := ipc.NewReader(src, ipc.WithAllocator(r.mem))
	if err != nil {
		return nil, err
	}
	defer rdr.Release()

	return collect(rdr.Schema(), rdr)
}

func (r *Reader) readCSV(src io.Reader) (arrow.Table, error) {
	rdr := csv.NewInferringReader(src,
		csv.WithAllocator(r.mem),
		csv.WithHeader(true),
		csv.WithChunk(64*1024),
		csv.WithNullReader(true, "", "NULL", "null", "NA"),
	)
	defer rdr.Release()

	return collect(nil, rdr)
}

// recordIterator is satisfied by both ipc.Reader and csv.Reader
type recordIterator interface {
	Next() bool
	Record() arrow.Record
	Err() error
	Schema() *arrow.Schema
}

// collect drains an iterator into a table. A nil schema is taken from the
// iterator after the first batch, since the CSV reader infers it lazily.
func collect(schema *arrow.Schema, it recordIterator) (arrow.Table, error) {
	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	for it.Next() {
		rec := it.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := it.Err(); err != nil && err != io.EOF {
		return nil, err
	}

	if schema == nil {
		schema = it.Schema()
	}
	if schema == nil {
		return nil, core.ErrEmptySchema
	}
	return array.NewTableFromRecords(schema, recs), nil
}
