package lqt

// Mode selects the per-pixel transform applied before the pyramid
// decomposition (spec §4.7 header mode bit).
type Mode uint8

const (
	// ModeCentered codes raw, centered RGB samples directly: r,g,b each
	// shifted into [-128,127] and pyramid-transformed independently.
	ModeCentered Mode = 0

	// ModeReversibleColor applies the reversible color transform
	// (package colorspace) to the centered samples before the pyramid
	// transform, trading a little per-channel energy balance for
	// decorrelation between channels.
	ModeReversibleColor Mode = 1
)

// Frame is one RGB8 raster image: Width*Height pixels, Pix interleaved
// R,G,B bytes (no alpha), row-major. It is the shape package ppm produces
// and consumes, and the shape Encode/Decode operate on directly.
type Frame struct {
	Width, Height int
	Pix           []byte
}

// EncodeOptions configures Encode.
type EncodeOptions struct {
	Mode Mode

	// CapacityBytes caps the size of the encoded stream; 0 means
	// unlimited. Once the cap is hit, Encode stops mid-scan, flushes a
	// valid (lower-quality) prefix, and returns ErrCapacityExceeded.
	CapacityBytes int

	// Stats, if non-nil, is filled in with bit-accounting detail once
	// Encode returns, successfully or not.
	Stats *EncodeStats
}

// EncodeStats reports where the output bits went, the way the original
// command-line encoder's stderr diagnostic did.
type EncodeStats struct {
	TotalBits   uint64
	ZeroRunBits uint64
}

// ZeroRunPercent returns the fraction of TotalBits spent on the run-length
// layer's zero-run codes, as measured by ZeroRunBits.
func (s EncodeStats) ZeroRunPercent() float64 {
	if s.TotalBits == 0 {
		return 0
	}
	return 100 * float64(s.ZeroRunBits) / float64(s.TotalBits)
}
