package vli_test

import (
	"bytes"
	"testing"

	"github.com/xdsopl-go/lqt/bitio"
	"github.com/xdsopl-go/lqt/vli"
)

func TestPutUnsignedKnownCodes(t *testing.T) {
	tests := []struct {
		n    uint64
		bits string
	}{
		{0, "0"},
		{1, "100"},
		{2, "101"},
		{3, "11000"},
		{4, "11001"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf, 0)
		if err := vli.PutUnsigned(w, tt.n); err != nil {
			t.Fatalf("PutUnsigned(%d): %v", tt.n, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		r := bitio.NewReader(&buf)
		var got []byte
		for i := 0; i < len(tt.bits); i++ {
			b, err := r.GetBit()
			if err != nil {
				t.Fatalf("GetBit(%d): %v", i, err)
			}
			got = append(got, byte('0'+b))
		}
		if string(got) != tt.bits {
			t.Errorf("PutUnsigned(%d) bits = %q, want %q", tt.n, got, tt.bits)
		}
	}
}

func TestUnsignedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 0)

	var values []uint64
	for n := uint64(0); n < 2000; n++ {
		values = append(values, n)
	}
	values = append(values, 1<<20, 1<<30, (1<<30)-1)

	for _, v := range values {
		if err := vli.PutUnsigned(w, v); err != nil {
			t.Fatalf("PutUnsigned(%d): %v", v, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	for i, want := range values {
		got, err := vli.GetUnsigned(r)
		if err != nil {
			t.Fatalf("GetUnsigned(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestSignedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 0)

	values := []int64{0, 1, -1, 2, -2, 1000, -1000, 1 << 20, -(1 << 20)}
	for _, v := range values {
		if err := vli.PutSigned(w, v); err != nil {
			t.Fatalf("PutSigned(%d): %v", v, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	for i, want := range values {
		got, err := vli.GetSigned(r)
		if err != nil {
			t.Fatalf("GetSigned(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestMixedVliAndRawBitStream(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 0)
	if err := vli.PutUnsigned(w, 0); err != nil {
		t.Fatal(err)
	}
	if err := vli.PutUnsigned(w, 5); err != nil {
		t.Fatal(err)
	}
	if err := w.PutBit(1); err != nil {
		t.Fatal(err)
	}
	if got, want := w.BitsCount(), uint64(7); got != want {
		t.Fatalf("BitsCount() = %d, want %d", got, want)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := bitio.NewReader(&buf)
	if v, err := vli.GetUnsigned(r); err != nil || v != 0 {
		t.Errorf("first value = (%d, %v), want (0, nil)", v, err)
	}
	if v, err := vli.GetUnsigned(r); err != nil || v != 5 {
		t.Errorf("second value = (%d, %v), want (5, nil)", v, err)
	}
	if b, err := r.GetBit(); err != nil || b != 1 {
		t.Errorf("raw bit = (%d, %v), want (1, nil)", b, err)
	}
}

func TestSignedZeroHasNoSignBit(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 0)
	if err := vli.PutSigned(w, 0); err != nil {
		t.Fatal(err)
	}
	if got := w.BitsCount(); got != 1 {
		t.Fatalf("encoding of 0 took %d bits, want 1 (no sign bit)", got)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 1 {
		t.Fatalf("encoding of 0 took %d bytes, want 1 (single zero bit, padded)", buf.Len())
	}
}
