package lqt

import (
	"errors"
	"fmt"
	"io"

	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/bitplane"
	"github.com/xdsopl-go/lqt/colorspace"
	"github.com/xdsopl-go/lqt/rle"
	"github.com/xdsopl-go/lqt/vli"
)

// Decode reads an LQT stream from r and reconstructs the frame. A stream
// truncated mid-scan (ErrEndOfStream at the bitio layer) is not an error
// here: Decode returns whatever the partially-decoded coefficients
// reconstruct to, per spec §7's degrade-gracefully contract. A stream
// truncated mid-header is reported as ErrMalformedHeader, since there is
// no partial frame to recover.
func Decode(r io.Reader) (*Frame, error) {
	br := bitio.NewReader(r)

	modeBit, err := br.GetBit()
	if err != nil {
		return nil, headerErr(err)
	}
	mode := Mode(modeBit)

	width64, err := vli.GetUnsigned(br)
	if err != nil {
		return nil, headerErr(err)
	}
	height64, err := vli.GetUnsigned(br)
	if err != nil {
		return nil, headerErr(err)
	}
	width, height := int(width64), int(height64)
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("%w: bad dimensions %dx%d", ErrMalformedHeader, width, height)
	}

	var roots [3]int64
	for c := range roots {
		roots[c], err = vli.GetSigned(br)
		if err != nil {
			return nil, headerErr(err)
		}
	}
	var planes [3]uint64
	for c := range planes {
		planes[c], err = vli.GetUnsigned(br)
		if err != nil {
			return nil, headerErr(err)
		}
	}

	depth := frameDepth(width, height)
	channels := [3]*bitplane.Channel{
		bitplane.NewDecodeChannel(depth, int(planes[0])),
		bitplane.NewDecodeChannel(depth, int(planes[1])),
		bitplane.NewDecodeChannel(depth, int(planes[2])),
	}
	for c, ch := range channels {
		ch.Pyr.SetRoot(int32(roots[c]))
	}

	rr := rle.NewReader(br)
	if err := bitplane.Decode(rr, channels); err != nil {
		return nil, err
	}

	leaves := [3][]int32{
		channels[0].Pyr.Inverse(),
		channels[1].Pyr.Inverse(),
		channels[2].Pyr.Inverse(),
	}

	f := &Frame{Width: width, Height: height, Pix: make([]byte, width*height*3)}
	side := 1 << uint(depth)
	for y := 0; y < height; y++ {
		leafOff := y * side
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			a, b, c := leaves[0][leafOff+x], leaves[1][leafOff+x], leaves[2][leafOff+x]
			if mode == ModeReversibleColor {
				a, b, c = colorspace.Inverse(a, b, c)
			}
			i := rowOff + x*3
			f.Pix[i+0] = clampSample(a)
			f.Pix[i+1] = clampSample(b)
			f.Pix[i+2] = clampSample(c)
		}
	}
	return f, nil
}

// headerErr maps a header-parsing failure to ErrMalformedHeader. Only
// ErrMalformedHeader is wrapped; other underlying errors survive as text
// in the message, and end-of-stream becomes a fixed "truncated" message.
func headerErr(err error) error {
	if errors.Is(err, bitio.ErrEndOfStream) {
		return fmt.Errorf("%w: truncated before end of header", ErrMalformedHeader)
	}
	return fmt.Errorf("%w: %v", ErrMalformedHeader, err)
}

// clampSample converts a centered sample back to [0,255]. Conformant
// streams never need clamping — the transforms are exact inverses — but a
// capacity-truncated stream can leave unset coefficients at zero, and a
// hand-crafted adversarial stream can claim any root value, so decode
// stays total rather than panicking on out-of-range input.
func clampSample(v int32) byte {
	v += 128
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
