// Command lqt encodes and decodes images in the LQT pyramidal quadtree
// format, reading and writing binary PPM (P6) on the raster side.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/xdsopl-go/lqt/lqt"
	"github.com/xdsopl-go/lqt/ppm"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lqt: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lqt encode <in.ppm> <out.lqt> [mode] [capacity-bytes]")
	fmt.Fprintln(os.Stderr, "       lqt decode <in.lqt> <out.ppm>")
}

func runEncode(args []string) error {
	if len(args) < 2 {
		usage()
		return errors.New("encode: missing arguments")
	}
	inPath, outPath := args[0], args[1]

	mode := lqt.ModeCentered
	if len(args) >= 3 {
		m, err := strconv.Atoi(args[2])
		if err != nil || (m != 0 && m != 1) {
			return fmt.Errorf("encode: mode must be 0 or 1, got %q", args[2])
		}
		mode = lqt.Mode(m)
	}
	capacity := 0
	if len(args) >= 4 {
		c, err := strconv.Atoi(args[3])
		if err != nil || c < 0 {
			return fmt.Errorf("encode: capacity must be a non-negative byte count, got %q", args[3])
		}
		capacity = c
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	width, height, pix, err := ppm.Read(in)
	if err != nil {
		return fmt.Errorf("encode: reading %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	frame := &lqt.Frame{Width: width, Height: height, Pix: pix}
	var stats lqt.EncodeStats
	opts := lqt.EncodeOptions{Mode: mode, CapacityBytes: capacity, Stats: &stats}
	n, err := lqt.Encode(out, frame, opts)
	if err != nil && !errors.Is(err, lqt.ErrCapacityExceeded) {
		return fmt.Errorf("encode: %w", err)
	}

	rawBits := width * height * 3 * 8
	log.Printf("%s -> %s: %d bytes (%.1f%% of uncompressed raster)", inPath, outPath, n, 100*float64(n*8)/float64(rawBits))
	log.Printf("bits used to encode zeros: %.1f%%", stats.ZeroRunPercent())
	if errors.Is(err, lqt.ErrCapacityExceeded) {
		log.Printf("capacity reached at %d bytes; output is a valid, lower-quality prefix", capacity)
	}
	return nil
}

func runDecode(args []string) error {
	if len(args) < 2 {
		usage()
		return errors.New("decode: missing arguments")
	}
	inPath, outPath := args[0], args[1]

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	frame, err := lqt.Decode(in)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := ppm.Write(out, frame.Width, frame.Height, frame.Pix); err != nil {
		return fmt.Errorf("decode: writing %s: %w", outPath, err)
	}
	log.Printf("%s -> %s: %dx%d", inPath, outPath, frame.Width, frame.Height)
	return nil
}
