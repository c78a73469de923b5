// Package rle implements the zero-run layer over vli: a thin coder for bit
// streams whose population is sparse (the significance map), with a raw
// passthrough for bits that are not sparse (sign bits, refinement bits).
//
// The normative form (spec §4.3): to emit a bit stream, write a VLI equal
// to the length of the run of zeros preceding the next 1; when the stream
// ends, write the terminating run length (zeros only, no following 1).
package rle

import (
	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/vli"
)

// Writer run-length-encodes a sparse bit stream on top of a bitio.Writer.
type Writer struct {
	w    *bitio.Writer
	run  uint64
	held []int // PutRaw bits held back until the open run's VLI is written

	// ZeroRunBits accumulates the number of output bits spent encoding
	// run lengths (the VLIs emitted by PutBit and Flush), as opposed to
	// PutRaw's direct passthrough bits. Callers use this to report what
	// fraction of a stream went to the zero-run layer, the way the
	// original command-line encoder reported it.
	ZeroRunBits uint64
}

// NewWriter returns a Writer that emits onto w.
func NewWriter(w *bitio.Writer) *Writer {
	return &Writer{w: w}
}

// PutBit appends one bit of the sparse stream. Zero bits are only counted;
// a one bit flushes the accumulated run as a single VLI.
func (w *Writer) PutBit(b int) error {
	if b == 0 {
		w.run++
		return nil
	}
	before := w.w.BitsCount()
	if err := vli.PutUnsigned(w.w, w.run); err != nil {
		return err
	}
	w.ZeroRunBits += w.w.BitsCount() - before
	w.run = 0
	for ; len(w.held) > 0; w.held = w.held[1:] {
		if err := w.w.PutBit(w.held[0]); err != nil {
			return err
		}
	}
	return nil
}

// PutRaw writes a bit to the underlying bitio.Writer, bypassing the run
// coder. Used for sign bits and refinement bits, which are not sparse.
// While a zero run is open the bit is held back and written right after
// that run's VLI, since Reader reads the VLI at the run's first zero.
func (w *Writer) PutRaw(b int) error {
	if w.run > 0 {
		w.held = append(w.held, b)
		return nil
	}
	return w.w.PutBit(b)
}

// Flush emits the trailing run of zeros (if any) as the terminating VLI,
// followed by any raw bits held back during that run.
// It does not flush the underlying bitio.Writer; callers flush that once,
// after all channels/planes have been coded.
func (w *Writer) Flush() error {
	before := w.w.BitsCount()
	if err := vli.PutUnsigned(w.w, w.run); err != nil {
		return err
	}
	w.ZeroRunBits += w.w.BitsCount() - before
	w.run = 0
	for ; len(w.held) > 0; w.held = w.held[1:] {
		if err := w.w.PutBit(w.held[0]); err != nil {
			return err
		}
	}
	return nil
}

// Reader decodes a bit stream produced by Writer.
type Reader struct {
	r         *bitio.Reader
	zerosLeft uint64
	haveOne   bool
}

// NewReader returns a Reader that reads from r.
func NewReader(r *bitio.Reader) *Reader {
	return &Reader{r: r}
}

// GetBit returns the next bit of the sparse stream.
func (r *Reader) GetBit() (int, error) {
	for r.zerosLeft == 0 && !r.haveOne {
		run, err := vli.GetUnsigned(r.r)
		if err != nil {
			return 0, err
		}
		r.zerosLeft = run
		r.haveOne = true
	}
	if r.zerosLeft > 0 {
		r.zerosLeft--
		return 0, nil
	}
	r.haveOne = false
	return 1, nil
}

// GetRaw reads a bit directly from the underlying bitio.Reader, matching
// Writer.PutRaw.
func (r *Reader) GetRaw() (int, error) {
	return r.r.GetBit()
}
