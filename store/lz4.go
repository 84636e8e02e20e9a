package store

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Codec streams through the LZ4 frame format.
type lz4Codec struct{}

func (lz4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

func (lz4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
