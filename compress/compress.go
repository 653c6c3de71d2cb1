// Package compress provides transparent stream compression selected by file
// extension.
//
// Corpus files and ranked outputs may carry one of the suffixes ".gz",
// ".zst" or ".lz4". Readers and writers returned here never close the
// underlying stream.
package compress

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a stream compression format.
type Format uint8

const (
	// None indicates an uncompressed stream.
	None Format = iota
	// Gzip indicates a gzip stream (".gz").
	Gzip
	// Zstd indicates a zstandard stream (".zst").
	Zstd
	// LZ4 indicates an LZ4 frame stream (".lz4").
	LZ4
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Ext returns the file suffix of the format, or "" for None.
func (f Format) Ext() string {
	switch f {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseFormat parses a format name as returned by String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("compress: unknown format %q", s)
	}
}

// FormatOf returns the format implied by the suffix of name.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// SplitExt splits a compression suffix off name.
// SplitExt("corpus.txt.gz") returns ("corpus.txt", ".gz").
func SplitExt(name string) (stem, suffix string) {
	f := FormatOf(name)
	if f == None {
		return name, ""
	}
	suffix = name[len(name)-len(f.Ext()):]
	return name[:len(name)-len(suffix)], suffix
}

// NewReader returns a decompressing reader for r.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("compress: unsupported format %v", f)
	}
}

// NewWriter returns a compressing writer for w. Close flushes the
// compressed stream but leaves w open.
func NewWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("compress: unsupported format %v", f)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
