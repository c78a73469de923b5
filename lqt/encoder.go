package lqt

import (
	"errors"
	"fmt"
	"io"

	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/bitplane"
	"github.com/xdsopl-go/lqt/colorspace"
	"github.com/xdsopl-go/lqt/pyramid"
	"github.com/xdsopl-go/lqt/rle"
	"github.com/xdsopl-go/lqt/vli"
)

// Encode writes f to w as an LQT stream. On success it returns the number
// of bytes written and a nil error. If opts.CapacityBytes is reached
// before the scan completes, Encode still flushes a complete, readable
// stream, and returns ErrCapacityExceeded alongside the byte count — the
// caller decides whether a truncated-but-valid file counts as success.
func Encode(w io.Writer, f *Frame, opts EncodeOptions) (int, error) {
	if f.Width <= 0 || f.Height <= 0 || f.Width > maxDimension || f.Height > maxDimension {
		return 0, fmt.Errorf("%w: bad dimensions %dx%d", ErrUnsupportedInput, f.Width, f.Height)
	}
	if len(f.Pix) != f.Width*f.Height*3 {
		return 0, fmt.Errorf("%w: pixel buffer size mismatch", ErrUnsupportedInput)
	}

	depth := frameDepth(f.Width, f.Height)
	side := 1 << uint(depth)
	leaves := buildLeaves(f, side, opts.Mode)

	pyramids := [3]*pyramid.Pyramid{
		pyramid.Forward(leaves[0], depth),
		pyramid.Forward(leaves[1], depth),
		pyramid.Forward(leaves[2], depth),
	}
	channels := [3]*bitplane.Channel{
		bitplane.NewEncodeChannel(pyramids[0]),
		bitplane.NewEncodeChannel(pyramids[1]),
		bitplane.NewEncodeChannel(pyramids[2]),
	}

	bw := bitio.NewWriter(w, opts.CapacityBytes)

	if err := bw.PutBit(int(opts.Mode)); err != nil {
		return 0, err
	}
	if err := vli.PutUnsigned(bw, uint64(f.Width)); err != nil {
		return 0, err
	}
	if err := vli.PutUnsigned(bw, uint64(f.Height)); err != nil {
		return 0, err
	}
	for _, pyr := range pyramids {
		if err := vli.PutSigned(bw, int64(pyr.Root())); err != nil {
			return 0, err
		}
	}
	for _, c := range channels {
		if err := vli.PutUnsigned(bw, uint64(c.Planes)); err != nil {
			return 0, err
		}
	}

	rw := rle.NewWriter(bw)
	scanErr := bitplane.Encode(rw, channels)
	if scanErr == nil {
		// Only flush the run-length layer's trailing zero-run when the
		// scan actually completed: once capacity is exhausted further
		// writes keep failing with the same error, so there is nothing
		// useful left for Flush to emit.
		scanErr = rw.Flush()
	}

	if opts.Stats != nil {
		opts.Stats.TotalBits = bw.BitsCount()
		opts.Stats.ZeroRunBits = rw.ZeroRunBits
	}

	if err := bw.Flush(); err != nil {
		return int((bw.BitsCount() + 7) / 8), err
	}

	n := int((bw.BitsCount() + 7) / 8)
	if scanErr != nil {
		if errors.Is(scanErr, bitio.ErrCapacityExceeded) {
			return n, ErrCapacityExceeded
		}
		return n, scanErr
	}
	return n, nil
}

// buildLeaves centers and, for ModeReversibleColor, color-transforms f's
// pixels into three side x side leaf planes (row-major), zero-padding the
// region outside f's own width x height. A padding leaf of 0 is the
// centered value of raw sample 128 in every channel, and also what the
// color transform maps a centered (0,0,0) pixel to, so the padding is the
// same under both modes.
func buildLeaves(f *Frame, side int, mode Mode) [3][]int32 {
	var leaves [3][]int32
	leaves[0] = make([]int32, side*side)
	leaves[1] = make([]int32, side*side)
	leaves[2] = make([]int32, side*side)

	for y := 0; y < f.Height; y++ {
		rowOff := y * f.Width * 3
		leafOff := y * side
		for x := 0; x < f.Width; x++ {
			i := rowOff + x*3
			r := int32(f.Pix[i+0]) - 128
			g := int32(f.Pix[i+1]) - 128
			b := int32(f.Pix[i+2]) - 128
			if mode == ModeReversibleColor {
				r, g, b = colorspace.Forward(r, g, b)
			}
			leaves[0][leafOff+x] = r
			leaves[1][leafOff+x] = g
			leaves[2][leafOff+x] = b
		}
	}
	return leaves
}
