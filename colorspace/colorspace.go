// Package colorspace implements the reversible color transform: a
// lifting-style integer transform between centered RGB samples and a
// Y/Cg/Co-like internal space. It is an external collaborator to the
// codec core (spec §6): mode=0 disables it entirely, mode=1 applies it
// before the pyramid transform on encode and inverts it after on decode.
package colorspace

// Forward applies the reversible color transform to one centered RGB8
// pixel (each sample in [-128,127]).
func Forward(r, g, b int32) (y, cb, cr int32) {
	y = (r + 2*g + b) >> 2
	cb = b - g
	cr = r - g
	return
}

// Inverse reverses Forward exactly.
func Inverse(y, cb, cr int32) (r, g, b int32) {
	g = y - ((cb + cr) >> 2)
	r = cr + g
	b = cb + g
	return
}
