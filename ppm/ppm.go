// Package ppm reads and writes the binary PPM ("P6") raster container: an
// 8-bit-per-channel RGB format with a short whitespace-separated header.
// This is the codec's one file-format external collaborator (spec §6);
// it is registered with the standard image package exactly the way
// google-wuffs's nie package registers its own minimal raster format.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// ErrUnsupportedInput is returned for anything that isn't an 8-bit-per
// channel binary PPM: a bad magic number, a maxval other than 255, or a
// truncated header/body.
var ErrUnsupportedInput = errors.New("ppm: unsupported input")

func init() {
	image.RegisterFormat("ppm", "P6", Decode, DecodeConfig)
}

// DecodeConfig returns the color model and dimensions of a PPM image
// without reading its pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, _, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// Decode reads a full PPM image.
func Decode(r io.Reader) (image.Image, error) {
	h, br, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	n := h.width * h.height
	raw := make([]byte, n*3)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	for i := 0; i < n; i++ {
		img.Pix[i*4+0] = raw[i*3+0]
		img.Pix[i*4+1] = raw[i*3+1]
		img.Pix[i*4+2] = raw[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

// Read is the raw-buffer convenience form of Decode: it returns the
// image's dimensions and a tightly packed, interleaved RGB8 buffer
// (3 bytes per pixel, no alpha), matching the codec's internal Frame
// representation directly.
func Read(r io.Reader) (width, height int, pix []byte, err error) {
	h, br, err := readHeader(r)
	if err != nil {
		return 0, 0, nil, err
	}
	pix = make([]byte, h.width*h.height*3)
	if _, err := io.ReadFull(br, pix); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	return h.width, h.height, pix, nil
}

// Write emits a packed interleaved RGB8 buffer as a binary PPM.
func Write(w io.Writer, width, height int, pix []byte) error {
	if len(pix) != width*height*3 {
		return fmt.Errorf("ppm: pixel buffer size mismatch: want %d, got %d", width*height*3, len(pix))
	}
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	_, err := w.Write(pix)
	return err
}

type header struct {
	width, height, maxval int
}

// readHeader parses the PPM "magic, width, height, maxval" header,
// tolerating '#' comments between whitespace-separated tokens as the PNM
// family does. It returns the *bufio.Reader it buffered r through, so the
// caller can keep reading the pixel data from the same point in the stream
// instead of losing whatever readHeader had already buffered ahead.
func readHeader(r io.Reader) (header, *bufio.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := readToken(br)
	if err != nil {
		return header{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	if magic != "P6" {
		return header{}, nil, fmt.Errorf("%w: bad magic %q", ErrUnsupportedInput, magic)
	}
	width, err := readInt(br)
	if err != nil {
		return header{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	height, err := readInt(br)
	if err != nil {
		return header{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	maxval, err := readInt(br)
	if err != nil {
		return header{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	if width <= 0 || height <= 0 {
		return header{}, nil, fmt.Errorf("%w: non-positive dimensions", ErrUnsupportedInput)
	}
	if maxval != 255 {
		return header{}, nil, fmt.Errorf("%w: maxval %d (only 8-bit PPM is supported)", ErrUnsupportedInput, maxval)
	}
	return header{width: width, height: height, maxval: maxval}, br, nil
}

func readToken(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			for {
				c, err := br.ReadByte()
				if err != nil {
					return "", err
				}
				if c == '\n' {
					break
				}
			}
			continue
		}
		if isSpace(b) {
			if buf != nil {
				return string(buf), nil
			}
			continue
		}
		buf = append(buf, b)
	}
}

func readInt(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", tok)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
