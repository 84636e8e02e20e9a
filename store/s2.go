package store

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// s2Codec streams through S2, the Snappy-compatible format tuned for
// throughput.
type s2Codec struct{}

func (s2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}

func (s2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
