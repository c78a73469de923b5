// Package pyramid implements the reversible integer quadtree decomposition:
// each parent coefficient is the rounded average of its four children, and
// each child is stored as the residual against that average.
//
// The whole tree lives in one flat arena; levels are slices into it rather
// than independent allocations, so traversal stays cache-friendly and a
// frame's only heap allocation of note is the single arena itself.
package pyramid

// Pyramid holds one channel's quadtree coefficients.
type Pyramid struct {
	depth   int
	arena   []int32
	offsets []int // offsets[d] is the start of level d in arena; offsets has depth+2 entries
}

// New allocates an empty pyramid of the given depth (length = 2^depth,
// pixels = length^2, tree_size = (4*pixels-1)/3).
func New(depth int) *Pyramid {
	offsets := make([]int, depth+2)
	off := 0
	for d := 0; d <= depth; d++ {
		offsets[d] = off
		off += levelSize(d)
	}
	offsets[depth+1] = off
	return &Pyramid{depth: depth, arena: make([]int32, off), offsets: offsets}
}

func levelSize(d int) int {
	n := 1
	for i := 0; i < d; i++ {
		n *= 4
	}
	return n
}

func levelSide(d int) int {
	return 1 << uint(d)
}

// Depth returns the pyramid's depth (number of non-root levels).
func (p *Pyramid) Depth() int { return p.depth }

// Root returns the single level-0 coefficient.
func (p *Pyramid) Root() int32 { return p.arena[0] }

// SetRoot sets the level-0 coefficient.
func (p *Pyramid) SetRoot(v int32) { p.arena[0] = v }

// Level returns a row-major view of level d (d in [1, Depth()]), side
// 2^d, as a slice into the pyramid's arena.
func (p *Pyramid) Level(d int) []int32 {
	return p.arena[p.offsets[d]:p.offsets[d+1]]
}

// Side returns the side length of level d.
func (p *Pyramid) Side(d int) int { return levelSide(d) }

// MaxAbs returns the maximum absolute value over all non-root coefficients.
func (p *Pyramid) MaxAbs() int32 {
	var max int32
	for _, v := range p.arena[p.offsets[1]:] {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// roundAvg computes round(sum/4) with ties rounded away from zero, via
// truncating integer division on sum adjusted by sign(sum)*2. This is the
// only rounding rule under which Forward and Inverse are exact inverses.
func roundAvg(sum int32) int32 {
	switch {
	case sum > 0:
		return (sum + 2) / 4
	case sum < 0:
		return (sum - 2) / 4
	default:
		return 0
	}
}

// Forward builds a pyramid from a leaf buffer (row-major, side 2^depth).
// len(leaves) must equal (2^depth)^2.
func Forward(leaves []int32, depth int) *Pyramid {
	p := New(depth)
	copy(p.Level(depth), leaves)

	for d := depth - 1; d >= 0; d-- {
		childSide := levelSide(d + 1)
		parentSide := levelSide(d)
		child := p.arenaLevel(d + 1)
		parent := p.arenaLevel(d)
		for py := 0; py < parentSide; py++ {
			for px := 0; px < parentSide; px++ {
				cy, cx := 2*py, 2*px
				i00 := cy*childSide + cx
				i01 := i00 + 1
				i10 := i00 + childSide
				i11 := i10 + 1
				sum := child[i00] + child[i01] + child[i10] + child[i11]
				avg := roundAvg(sum)
				parent[py*parentSide+px] = avg
				child[i00] -= avg
				child[i01] -= avg
				child[i10] -= avg
				child[i11] -= avg
			}
		}
	}
	return p
}

// Inverse reconstructs the leaf level from the pyramid's root and
// residuals and returns a copy of it. The levels are overwritten in place,
// parent-to-child, so afterwards the pyramid holds reconstructed values
// rather than residuals.
func (p *Pyramid) Inverse() []int32 {
	for d := 0; d < p.depth; d++ {
		childSide := levelSide(d + 1)
		parentSide := levelSide(d)
		child := p.arenaLevel(d + 1)
		parent := p.arenaLevel(d)
		for py := 0; py < parentSide; py++ {
			for px := 0; px < parentSide; px++ {
				avg := parent[py*parentSide+px]
				cy, cx := 2*py, 2*px
				i00 := cy*childSide + cx
				i01 := i00 + 1
				i10 := i00 + childSide
				i11 := i10 + 1
				child[i00] += avg
				child[i01] += avg
				child[i10] += avg
				child[i11] += avg
			}
		}
	}
	leaves := make([]int32, len(p.arenaLevel(p.depth)))
	copy(leaves, p.arenaLevel(p.depth))
	return leaves
}

// arenaLevel returns level d, including the root (d==0), as a slice into
// the arena. Level is the public equivalent for d>=1; d==0 is used
// internally by Forward/Inverse since the root is a single cell of "level
// 0" in arena terms.
func (p *Pyramid) arenaLevel(d int) []int32 {
	return p.arena[p.offsets[d]:p.offsets[d+1]]
}
