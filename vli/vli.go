// Package vli implements the variable-length integer code used throughout
// the bitstream: Elias-gamma on n+1, MSB-first.
//
// PutUnsigned(n) writes floor(log2(n+1)) one-bits, a terminating zero-bit,
// and then the low-order bits of n+1 with its implicit leading one
// stripped. Examples: 0 -> "0", 1 -> "100", 2 -> "101", 3 -> "11000",
// 4 -> "11001".
package vli

import (
	"fmt"
	"math/bits"

	"github.com/xdsopl-go/lqt/bitio"
)

// PutUnsigned writes n as an Elias-gamma code on n+1.
func PutUnsigned(w *bitio.Writer, n uint64) error {
	v := n + 1
	k := bits.Len64(v) - 1 // number of bits below the leading one
	for i := 0; i < k; i++ {
		if err := w.PutBit(1); err != nil {
			return err
		}
	}
	if err := w.PutBit(0); err != nil {
		return err
	}
	for i := k - 1; i >= 0; i-- {
		if err := w.PutBit(int((v >> uint(i)) & 1)); err != nil {
			return err
		}
	}
	return nil
}

// GetUnsigned reads a value written by PutUnsigned.
func GetUnsigned(r *bitio.Reader) (uint64, error) {
	k := 0
	for {
		b, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		k++
	}
	v := uint64(1)
	for i := 0; i < k; i++ {
		b, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		v = (v << 1) | uint64(b)
	}
	return v - 1, nil
}

// PutSigned writes the magnitude of n as an unsigned VLI, followed by a
// sign bit (1 = negative) iff the magnitude is non-zero.
func PutSigned(w *bitio.Writer, n int64) error {
	mag := n
	neg := 0
	if n < 0 {
		mag = -n
		neg = 1
	}
	if err := PutUnsigned(w, uint64(mag)); err != nil {
		return err
	}
	if mag == 0 {
		return nil
	}
	return w.PutBit(neg)
}

// GetSigned reads a value written by PutSigned.
func GetSigned(r *bitio.Reader) (int64, error) {
	mag, err := GetUnsigned(r)
	if err != nil {
		return 0, err
	}
	if mag == 0 {
		return 0, nil
	}
	if mag > 1<<62 {
		return 0, fmt.Errorf("vli: magnitude %d out of range", mag)
	}
	sign, err := r.GetBit()
	if err != nil {
		return 0, err
	}
	if sign != 0 {
		return -int64(mag), nil
	}
	return int64(mag), nil
}
