package arrowfile

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstdSuffix = ".zst"

// isZstdPath reports whether the whole file is one zstd frame
func isZstdPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), zstdSuffix)
}

// trimZstd strips a trailing .zst so the inner extension picks the format
func trimZstd(path string) string {
	if isZstdPath(path) {
		return path[:len(path)-len(zstdSuffix)]
	}
	return path
}

// newZstdSink compresses everything written to it into w.
// The caller closes the encoder before closing w.
func newZstdSink(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
}

// decompressZstd reads a whole zstd stream into memory. Arrow IPC files
// and Parquet need random access, which a decoder cannot offer.
func decompressZstd(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
