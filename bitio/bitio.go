// Package bitio implements the byte-aligned, MSB-first bit I/O substrate
// the rest of the codec is built on (VLI, RLE, and the bit-plane coder all
// read and write one bit at a time through here).
//
// It is a thin, capacity-aware wrapper around github.com/icza/bitio rather
// than a hand-rolled accumulator: the bit-shifting and byte-flushing is
// exactly the part of a bit-level codec that's easy to get subtly wrong,
// and the ecosystem already has a well-exercised implementation of it.
package bitio

import (
	"errors"
	"io"

	extbitio "github.com/icza/bitio"
)

// ErrEndOfStream is returned by Reader.GetBit when the underlying stream is
// exhausted. Whether that is a hard failure or graceful termination is a
// decision made by the caller (see package lqt and package bitplane).
var ErrEndOfStream = errors.New("bitio: end of stream")

// ErrCapacityExceeded is returned by Writer.PutBit once the configured byte
// cap has been reached. The writer has not written the bit that triggered
// the error; everything written before it is still a valid, flushable
// prefix.
var ErrCapacityExceeded = errors.New("bitio: capacity exceeded")

// Writer appends single bits to an underlying byte stream, MSB-first within
// each byte.
type Writer struct {
	w         *extbitio.Writer
	bits      uint64
	capBits   uint64 // 0 means unlimited
	unlimited bool
}

// NewWriter wraps w. capacityBytes caps the total number of bytes the
// bit-packer will ever flush; 0 means unlimited.
func NewWriter(w io.Writer, capacityBytes int) *Writer {
	bw := &Writer{w: extbitio.NewWriter(w)}
	if capacityBytes <= 0 {
		bw.unlimited = true
	} else {
		bw.capBits = uint64(capacityBytes) * 8
	}
	return bw
}

// PutBit appends a single bit (0 or 1).
func (w *Writer) PutBit(b int) error {
	if !w.unlimited && w.bits >= w.capBits {
		return ErrCapacityExceeded
	}
	if err := w.w.WriteBool(b != 0); err != nil {
		return err
	}
	w.bits++
	return nil
}

// Flush pads any partial byte with zero bits and releases the underlying
// writer's buffered state.
func (w *Writer) Flush() error {
	return w.w.Close()
}

// BitsCount returns the number of bits written since construction.
func (w *Writer) BitsCount() uint64 {
	return w.bits
}

// Reader reads single bits from an underlying byte stream, MSB-first
// within each byte.
type Reader struct {
	r    *extbitio.Reader
	bits uint64
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: extbitio.NewReader(r)}
}

// GetBit returns the next bit, or ErrEndOfStream once the stream is
// exhausted.
func (r *Reader) GetBit() (int, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, ErrEndOfStream
		}
		return 0, err
	}
	r.bits++
	if b {
		return 1, nil
	}
	return 0, nil
}

// BitsCount returns the number of bits read since construction.
func (r *Reader) BitsCount() uint64 {
	return r.bits
}
