package dbg

import (
	"github.com/bebop/tfmindex/internal/bitvector"
	"github.com/bebop/tfmindex/internal/wavelet"
)

// MarkPrefixIntervals expands a node-boundary bitvector B (as produced by
// FindMinDBG) into the paired dout/din bitvectors the compactor collapses
// rows against. Both have length len(B)+1 and end in a sentinel 1.
//
// Both start as all ones. Because FindMinDBG only ever merges rows that
// share both their de Bruijn context and their own L symbol, every node
// interval's LF-images land in a contiguous, order-preserving run of
// destination rows (the classical run-length-BWT argument: rank_c is
// strictly increasing within a run of equal c). When that run is itself
// exactly one node interval of B, the node is collapsed: din is cleared
// on every row of the node but the first (the rows whose L symbol the
// compactor drops), and dout on every destination row but the first. A
// node whose LF-images are not one node interval is left as it is. Each
// collapse clears as many dout bits as din bits, so popcount(dout) ==
// popcount(din).
func MarkPrefixIntervals(L *wavelet.Tree, C []int, B *bitvector.BitVector) (dout, din *bitvector.BitVector) {
	m := B.Len()

	dout = bitvector.New(m + 1)
	for i := 0; i < m; i++ {
		dout.SetBit(i, true)
	}
	dout.SetBit(m, true)

	din = bitvector.New(m + 1)
	for i := 0; i < m; i++ {
		din.SetBit(i, true)
	}

	lf := buildLF(L, C)
	for a := 0; a < m; {
		b := a + 1
		for b < m && !B.GetBit(b) {
			b++
		}
		if b-a > 1 {
			clearInteriorEntries(dout, din, B, lf, a, b)
		}
		a = b
	}
	din.SetBit(m, true)

	return dout, din
}

// clearInteriorEntries collapses the node interval [a, b) when its
// LF-images, which FindMinDBG guarantees form a contiguous run starting
// at min(lf[a:b]), are exactly one node interval of B: it clears din on
// every row of [a, b) but the first and dout on every LF-image but the
// topmost. Otherwise it changes nothing.
func clearInteriorEntries(dout, din, B *bitvector.BitVector, lf []int, a, b int) {
	min := lf[a]
	for i := a + 1; i < b; i++ {
		if lf[i] < min {
			min = lf[i]
		}
	}
	for i, end := min, min+b-a; i <= end && i < B.Len(); i++ {
		if B.GetBit(i) != (i == min || i == end) {
			return
		}
	}
	for i := a; i < b; i++ {
		if lf[i] != min {
			dout.SetBit(lf[i], false)
			din.SetBit(i, false)
		}
	}
}
