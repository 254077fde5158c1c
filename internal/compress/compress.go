package compress

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Algorithms lists the supported compression algorithms
var Algorithms = []string{"gzip", "zstd", "xz", "none"}

// Writer wraps a compression writer
type Writer struct {
	writer io.WriteCloser
	base   io.Writer
}

// NewWriter creates a new compression writer based on the algorithm
func NewWriter(w io.Writer, algorithm string) (*Writer, error) {
	var compressor io.WriteCloser
	var err error

	switch algorithm {
	case "gzip":
		compressor, err = gzip.NewWriterLevel(w, gzip.BestSpeed)
	case "zstd":
		var enc *zstd.Encoder
		enc, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		compressor = enc
	case "xz":
		compressor, err = xz.NewWriter(w)
	case "none", "":
		// No compression - use a passthrough writer
		return &Writer{
			writer: &nopCloser{w},
			base:   w,
		}, nil
	default:
		compressor, err = gzip.NewWriterLevel(w, gzip.BestSpeed)
	}

	if err != nil {
		return nil, err
	}

	return &Writer{
		writer: compressor,
		base:   w,
	}, nil
}

// Write writes data to the compressor
func (w *Writer) Write(p []byte) (int, error) {
	return w.writer.Write(p)
}

// Close closes the compressor. The underlying writer is left open
func (w *Writer) Close() error {
	return w.writer.Close()
}

// NewReader returns a decompressing reader for algorithm. Close releases
// decoder resources but not r.
func NewReader(r io.Reader, algorithm string) (io.ReadCloser, error) {
	switch algorithm {
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return gr, nil
	case "zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case "xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case "none", "":
		return io.NopCloser(r), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", algorithm)
	}
}

// Extension returns the file suffix for algorithm
func Extension(algorithm string) string {
	switch algorithm {
	case "gzip":
		return ".gz"
	case "zstd":
		return ".zst"
	case "xz":
		return ".xz"
	case "none", "":
		return ""
	default:
		return ".gz"
	}
}

// Detect guesses the algorithm from a file name
func Detect(path string) string {
	switch filepath.Ext(path) {
	case ".gz":
		return "gzip"
	case ".zst":
		return "zstd"
	case ".xz":
		return "xz"
	default:
		return "none"
	}
}

// Valid reports whether algorithm is one of Algorithms or empty
func Valid(algorithm string) bool {
	if algorithm == "" {
		return true
	}
	for _, a := range Algorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (n *nopCloser) Close() error {
	return nil
}
