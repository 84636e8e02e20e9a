package store

import (
	"fmt"
	"io"

	"github.com/arloliu/primeseg/errs"
)

// CompressionType identifies the compression applied to a prime stream.
type CompressionType uint8

const (
	// CompressionNone stores the stream uncompressed.
	CompressionNone CompressionType = iota
	// CompressionZstd uses Zstandard: the best ratio, moderate speed.
	CompressionZstd
	// CompressionS2 uses S2 (Snappy-compatible): the fastest option.
	CompressionS2
	// CompressionLZ4 uses LZ4: fast with a reasonable ratio.
	CompressionLZ4
)

// String returns the canonical name of the compression type.
func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseCompression parses a compression name as accepted on the command
// line.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name)
	}
}

// Codec creates compressing writers and decompressing readers for one
// compression type. Writers own the compression state only; closing a
// writer flushes it without closing the underlying stream.
type Codec interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// NewCodec returns the codec for the given compression type.
func NewCodec(t CompressionType) (Codec, error) {
	switch t {
	case CompressionNone:
		return noopCodec{}, nil
	case CompressionZstd:
		return zstdCodec{}, nil
	case CompressionS2:
		return s2Codec{}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompression, t)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
