//go:build !zstd_cgo

package store

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec streams through the pure-Go Zstandard implementation. Build
// with the zstd_cgo tag to use the cgo binding instead.
type zstdCodec struct{}

func (zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}
