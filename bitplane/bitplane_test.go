package bitplane_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/bitplane"
	"github.com/xdsopl-go/lqt/pyramid"
	"github.com/xdsopl-go/lqt/rle"
)

func randomLeaves(rng *rand.Rand, side int) []int32 {
	leaves := make([]int32, side*side)
	for i := range leaves {
		leaves[i] = int32(rng.Intn(200) - 100)
	}
	return leaves
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	depth := 3
	side := 1 << uint(depth)

	var pyramids [3]*pyramid.Pyramid
	var encChannels [3]*bitplane.Channel
	for c := 0; c < 3; c++ {
		pyramids[c] = pyramid.Forward(randomLeaves(rng, side), depth)
		encChannels[c] = bitplane.NewEncodeChannel(pyramids[c])
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf, 0)
	rw := rle.NewWriter(bw)
	if err := bitplane.Encode(rw, encChannels); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := rw.Flush(); err != nil {
		t.Fatalf("rle Flush: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("bitio Flush: %v", err)
	}

	br := bitio.NewReader(&buf)
	rr := rle.NewReader(br)
	var decChannels [3]*bitplane.Channel
	for c := 0; c < 3; c++ {
		decChannels[c] = bitplane.NewDecodeChannel(depth, encChannels[c].Planes)
		decChannels[c].Pyr.SetRoot(pyramids[c].Root())
	}
	if err := bitplane.Decode(rr, decChannels); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for c := 0; c < 3; c++ {
		for d := 1; d <= depth; d++ {
			want := pyramids[c].Level(d)
			got := decChannels[c].Pyr.Level(d)
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("channel %d level %d coeff %d = %d, want %d", c, d, i, got[i], want[i])
				}
			}
		}
	}
}

func TestDecodeGracefulOnTruncation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	depth := 3
	side := 1 << uint(depth)

	var pyramids [3]*pyramid.Pyramid
	var encChannels [3]*bitplane.Channel
	for c := 0; c < 3; c++ {
		pyramids[c] = pyramid.Forward(randomLeaves(rng, side), depth)
		encChannels[c] = bitplane.NewEncodeChannel(pyramids[c])
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf, 0)
	rw := rle.NewWriter(bw)
	if err := bitplane.Encode(rw, encChannels); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := rw.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	full := buf.Bytes()
	truncated := full[:len(full)/2]

	br := bitio.NewReader(bytes.NewReader(truncated))
	rr := rle.NewReader(br)
	var decChannels [3]*bitplane.Channel
	for c := 0; c < 3; c++ {
		decChannels[c] = bitplane.NewDecodeChannel(depth, encChannels[c].Planes)
		decChannels[c].Pyr.SetRoot(pyramids[c].Root())
	}
	if err := bitplane.Decode(rr, decChannels); err != nil {
		t.Fatalf("Decode on truncated stream returned error, want graceful nil: %v", err)
	}
}
