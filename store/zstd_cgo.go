//go:build zstd_cgo

package store

import (
	"io"

	"github.com/valyala/gozstd"
)

// zstdCodec streams through the cgo Zstandard binding, selected with the
// zstd_cgo build tag.
type zstdCodec struct{}

func (zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gozstd.NewWriter(w), nil
}

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(gozstd.NewReader(r)), nil
}
