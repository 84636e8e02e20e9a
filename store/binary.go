package store

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/primeseg/errs"
)

// BinaryWriter writes primes as a little-endian uint64 stream followed by
// an 8-byte xxHash64 digest of the payload, through an optional compression
// codec. The digest lets readers verify that a stored prime list survived
// storage and transfer intact.
type BinaryWriter struct {
	buf    *bufio.Writer
	codec  io.WriteCloser
	digest *xxhash.Digest
	closed bool
}

var _ Sink = (*BinaryWriter)(nil)

// NewBinaryWriter creates a binary sink writing to w with the given
// compression.
func NewBinaryWriter(w io.Writer, compression CompressionType) (*BinaryWriter, error) {
	codec, err := NewCodec(compression)
	if err != nil {
		return nil, err
	}
	cw, err := codec.NewWriter(w)
	if err != nil {
		return nil, err
	}

	return &BinaryWriter{
		buf:    bufio.NewWriter(cw),
		codec:  cw,
		digest: xxhash.New(),
	}, nil
}

// Write appends one prime.
func (b *BinaryWriter) Write(prime uint64) error {
	if b.closed {
		return errs.ErrStoreClosed
	}
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], prime)
	b.digest.Write(scratch[:])
	_, err := b.buf.Write(scratch[:])

	return err
}

// Close appends the digest footer, flushes buffered output and finalizes
// the compression stream.
func (b *BinaryWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	var footer [8]byte
	binary.LittleEndian.PutUint64(footer[:], b.digest.Sum64())
	if _, err := b.buf.Write(footer[:]); err != nil {
		return err
	}
	if err := b.buf.Flush(); err != nil {
		return err
	}

	return b.codec.Close()
}

// ReadBinary reads back a prime list written by BinaryWriter and verifies
// its digest footer. It returns errs.ErrChecksumMismatch when the payload
// does not match the stored digest.
func ReadBinary(r io.Reader, compression CompressionType) ([]uint64, error) {
	codec, err := NewCodec(compression)
	if err != nil {
		return nil, err
	}
	cr, err := codec.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	data, err := io.ReadAll(cr)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 || len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: truncated stream (%d bytes)", errs.ErrChecksumMismatch, len(data))
	}
	payload := data[:len(data)-8]
	want := binary.LittleEndian.Uint64(data[len(data)-8:])
	if got := xxhash.Sum64(payload); got != want {
		return nil, fmt.Errorf("%w: got %#x, want %#x", errs.ErrChecksumMismatch, got, want)
	}

	primes := make([]uint64, 0, len(payload)/8)
	for i := 0; i < len(payload); i += 8 {
		primes = append(primes, binary.LittleEndian.Uint64(payload[i:]))
	}

	return primes, nil
}
