// Package bitplane implements the significance + refinement bit-plane
// coder (spec component C6): coefficients are visited MSB-first across
// planes, in per-level Hilbert order (coarse to fine), with a significance
// pass and a refinement pass interleaved per plane, and the plane counter
// shared across all three color channels.
package bitplane

import (
	"errors"

	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/hilbert"
	"github.com/xdsopl-go/lqt/pyramid"
	"github.com/xdsopl-go/lqt/rle"
)

// Channel binds one color channel's pyramid to the significance state the
// bit-plane coder needs to carry across planes.
type Channel struct {
	Pyr    *pyramid.Pyramid
	Planes int

	sig     [][]bool // sig[d][idx], indexed by raw (row-major) coefficient index, d in [1,Depth]
	pending [][2]int // [level, idx] pairs that became significant during the current plane
}

// NewEncodeChannel derives Planes from the pyramid's own coefficients, per
// spec: the smallest p such that 2^p > max|c| over the non-root pyramid.
func NewEncodeChannel(pyr *pyramid.Pyramid) *Channel {
	return newChannel(pyr, planesFor(pyr.MaxAbs()))
}

// NewDecodeChannel allocates an empty pyramid of the given depth together
// with the significance state needed to decode planes bits into it; planes
// is read from the header (C7).
func NewDecodeChannel(depth, planes int) *Channel {
	return newChannel(pyramid.New(depth), planes)
}

func newChannel(pyr *pyramid.Pyramid, planes int) *Channel {
	c := &Channel{Pyr: pyr, Planes: planes}
	c.sig = make([][]bool, pyr.Depth()+1)
	for d := 1; d <= pyr.Depth(); d++ {
		c.sig[d] = make([]bool, pyr.Side(d)*pyr.Side(d))
	}
	return c
}

// planesFor returns the smallest p such that 2^p > max.
func planesFor(max int32) int {
	p := 0
	for (int32(1) << uint(p)) <= max {
		p++
	}
	return p
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// permCache memoizes the Hilbert permutation per distinct level side, since
// every channel at a given depth shares the same set of sides and walks
// each of them once per plane.
type permCache struct {
	byLevel map[int][]int
}

func newPermCache() *permCache { return &permCache{byLevel: make(map[int][]int)} }

func (c *permCache) forLevel(ch *Channel, d int) []int {
	side := ch.Pyr.Side(d)
	if order, ok := c.byLevel[side]; ok {
		return order
	}
	order := hilbert.Permutation(side)
	c.byLevel[side] = order
	return order
}

func (c *Channel) commitPending() {
	for _, p := range c.pending {
		c.sig[p[0]][p[1]] = true
	}
	c.pending = c.pending[:0]
}

// Encode emits the interleaved bit-plane payload for three channels
// sharing one plane counter (spec §4.6): plane p runs from
// max(Planes)-1 down to 0; a channel is skipped entirely for every p at
// or above its own Planes (its coefficients are already known to be
// smaller than 2^Planes).
func Encode(w *rle.Writer, channels [3]*Channel) error {
	cache := newPermCache()
	maxPlanes := 0
	for _, c := range channels {
		if c.Planes > maxPlanes {
			maxPlanes = c.Planes
		}
	}
	for p := maxPlanes - 1; p >= 0; p-- {
		for _, c := range channels {
			if p >= c.Planes {
				continue
			}
			if err := encodeSignificancePass(w, c, cache, p); err != nil {
				return err
			}
			if err := encodeRefinementPass(w, c, cache, p); err != nil {
				return err
			}
			c.commitPending()
		}
	}
	return nil
}

func encodeSignificancePass(w *rle.Writer, c *Channel, cache *permCache, plane int) error {
	for d := 1; d <= c.Pyr.Depth(); d++ {
		order := cache.forLevel(c, d)
		level := c.Pyr.Level(d)
		sig := c.sig[d]
		for _, idx := range order {
			if sig[idx] {
				continue
			}
			v := level[idx]
			bit := int((abs32(v) >> uint(plane)) & 1)
			if err := w.PutBit(bit); err != nil {
				return err
			}
			if bit == 1 {
				sign := 0
				if v < 0 {
					sign = 1
				}
				if err := w.PutRaw(sign); err != nil {
					return err
				}
				c.pending = append(c.pending, [2]int{d, idx})
			}
		}
	}
	return nil
}

func encodeRefinementPass(w *rle.Writer, c *Channel, cache *permCache, plane int) error {
	for d := 1; d <= c.Pyr.Depth(); d++ {
		order := cache.forLevel(c, d)
		level := c.Pyr.Level(d)
		sig := c.sig[d]
		for _, idx := range order {
			if !sig[idx] {
				continue
			}
			bit := int((abs32(level[idx]) >> uint(plane)) & 1)
			if err := w.PutRaw(bit); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decode fills three channels' pyramids from the interleaved bit-plane
// payload. End-of-stream is treated as graceful truncation (spec §7): the
// channels are left with whatever coefficients were decoded so far and
// Decode returns nil.
func Decode(r *rle.Reader, channels [3]*Channel) error {
	cache := newPermCache()
	maxPlanes := 0
	for _, c := range channels {
		if c.Planes > maxPlanes {
			maxPlanes = c.Planes
		}
	}
	for p := maxPlanes - 1; p >= 0; p-- {
		for _, c := range channels {
			if p >= c.Planes {
				continue
			}
			if err := decodeSignificancePass(r, c, cache, p); err != nil {
				if errors.Is(err, bitio.ErrEndOfStream) {
					return nil
				}
				return err
			}
			if err := decodeRefinementPass(r, c, cache, p); err != nil {
				if errors.Is(err, bitio.ErrEndOfStream) {
					return nil
				}
				return err
			}
			c.commitPending()
		}
	}
	return nil
}

func decodeSignificancePass(r *rle.Reader, c *Channel, cache *permCache, plane int) error {
	for d := 1; d <= c.Pyr.Depth(); d++ {
		order := cache.forLevel(c, d)
		level := c.Pyr.Level(d)
		sig := c.sig[d]
		for _, idx := range order {
			if sig[idx] {
				continue
			}
			bit, err := r.GetBit()
			if err != nil {
				return err
			}
			if bit == 1 {
				sign, err := r.GetRaw()
				if err != nil {
					return err
				}
				val := int32(1) << uint(plane)
				if sign != 0 {
					val = -val
				}
				level[idx] = val
				c.pending = append(c.pending, [2]int{d, idx})
			}
		}
	}
	return nil
}

func decodeRefinementPass(r *rle.Reader, c *Channel, cache *permCache, plane int) error {
	for d := 1; d <= c.Pyr.Depth(); d++ {
		order := cache.forLevel(c, d)
		level := c.Pyr.Level(d)
		sig := c.sig[d]
		for _, idx := range order {
			if !sig[idx] {
				continue
			}
			bit, err := r.GetRaw()
			if err != nil {
				return err
			}
			if bit != 0 {
				add := int32(1) << uint(plane)
				if level[idx] < 0 {
					level[idx] -= add
				} else {
					level[idx] += add
				}
			}
		}
	}
	return nil
}
