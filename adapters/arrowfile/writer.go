package arrowfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"arrowview/internal/errors"
)

// Compression names accepted by WriteOptions
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionLZ4  = "lz4"
)

// WriteOptions controls how Write encodes a table
type WriteOptions struct {
	Compression string
	BatchSize   int64
	Allocator   memory.Allocator
}

// FormatForPath picks the output encoding from the destination extension:
// .parquet, .arrows for an IPC stream, anything else an IPC file. A
// trailing .zst is ignored.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(trimZstd(path))) {
	case ".parquet", ".pq":
		return FormatParquet
	case ".arrows", ".stream":
		return FormatIPCStream
	}
	return FormatIPCFile
}

// writeOnly hides Close from encoders that would otherwise close the sink
type writeOnly struct {
	io.Writer
}

// Write encodes tbl to path in the format implied by its extension.
// A .zst suffix compresses the whole encoded file with zstd.
func Write(path string, tbl arrow.Table, opts WriteOptions) error {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 64 * 1024
	}
	if opts.Allocator == nil {
		opts.Allocator = memory.DefaultAllocator
	}
	if opts.Compression == "" {
		opts.Compression = CompressionNone
	}
	switch opts.Compression {
	case CompressionNone, CompressionZstd, CompressionLZ4:
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown compression %q", opts.Compression))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("cannot create %q", path), err)
	}
	defer f.Close()

	format := FormatForPath(path)
	if err := encode(f, path, format, tbl, opts); err != nil {
		return errors.IOError(fmt.Sprintf("failed to write %s file %q", format, path), err)
	}
	if err := f.Close(); err != nil {
		return errors.IOError(fmt.Sprintf("cannot close %q", path), err)
	}
	return nil
}

func encode(f *os.File, path string, format Format, tbl arrow.Table, opts WriteOptions) error {
	if !isZstdPath(path) {
		return encodeTable(writeOnly{f}, format, tbl, opts)
	}

	enc, err := newZstdSink(f)
	if err != nil {
		return err
	}
	if err := encodeTable(writeOnly{enc}, format, tbl, opts); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func encodeTable(w io.Writer, format Format, tbl arrow.Table, opts WriteOptions) error {
	if format == FormatParquet {
		return writeParquet(w, tbl, opts)
	}
	return writeIPC(w, tbl, format, opts)
}

func writeIPC(f io.Writer, tbl arrow.Table, format Format, opts WriteOptions) error {
	ipcOpts := []ipc.Option{ipc.WithSchema(tbl.Schema()), ipc.WithAllocator(opts.Allocator)}
	switch opts.Compression {
	case CompressionZstd:
		ipcOpts = append(ipcOpts, ipc.WithZstd())
	case CompressionLZ4:
		ipcOpts = append(ipcOpts, ipc.WithLZ4())
	}

	var w interface {
		Write(arrow.Record) error
		Close() error
	}
	if format == FormatIPCStream {
		w = ipc.NewWriter(f, ipcOpts...)
	} else {
		fw, err := ipc.NewFileWriter(f, ipcOpts...)
		if err != nil {
			return err
		}
		w = fw
	}

	tr := array.NewTableReader(tbl, opts.BatchSize)
	defer tr.Release()
	for tr.Next() {
		if err := w.Write(tr.Record()); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func writeParquet(f io.Writer, tbl arrow.Table, opts WriteOptions) error {
	codec := compress.Codecs.Uncompressed
	switch opts.Compression {
	case CompressionZstd:
		codec = compress.Codecs.Zstd
	case CompressionLZ4:
		codec = compress.Codecs.Lz4Raw
	}
	props := parquet.NewWriterProperties(
		parquet.WithAllocator(opts.Allocator),
		parquet.WithCompression(codec),
	)
	return pqarrow.WriteTable(tbl, f, opts.BatchSize, props,
		pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
}

// Writer adapts Write to a reusable sink with fixed options
type Writer struct {
	opts WriteOptions
}

// NewWriter creates a sink that encodes every table with opts
func NewWriter(opts WriteOptions) *Writer {
	return &Writer{opts: opts}
}

// Write encodes tbl to path
func (w *Writer) Write(ctx context.Context, path string, tbl arrow.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Write(path, tbl, w.opts)
}
