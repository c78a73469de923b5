package lqt

import (
	"errors"

	"github.com/xdsopl-go/lqt/bitio"
)

// Error kinds (spec §7). IoError isn't its own sentinel here: it surfaces
// as whatever the underlying io.Reader/io.Writer returned, wrapped with
// context, the same way the teacher's codec package lets I/O errors from
// os.File propagate rather than re-wrapping them in a generic IoError.
var (
	// ErrMalformedHeader means a header VLI decoded to a sentinel value,
	// or width/height were zero or absurd. Hitting end-of-stream while
	// still parsing the header is reported as ErrMalformedHeader too: a
	// truncated header is not recoverable the way a truncated payload is.
	ErrMalformedHeader = errors.New("lqt: malformed header")

	// ErrUnsupportedInput means the external PPM reader rejected the
	// input (not 8-bit RGB, bad magic, etc).
	ErrUnsupportedInput = errors.New("lqt: unsupported input")

	// ErrCapacityExceeded is returned by Encode once the configured byte
	// cap was reached. It is re-exported from package bitio so callers
	// can compare/unwrap it uniformly regardless of which layer raised
	// it. The output written so far is still a complete, valid,
	// byte-aligned file — this is a designed degrade-gracefully
	// property, not a corrupt-output bug.
	ErrCapacityExceeded = bitio.ErrCapacityExceeded
)
