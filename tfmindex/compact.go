package tfmindex

import "github.com/bebop/tfmindex/internal/bitvector"

// compactResult holds the output of collapsing a BWT against its
// dout/din node-boundary bitvectors: a shorter last column and the
// matching pair of boundary bitvectors, re-indexed over the surviving
// rows.
type compactResult struct {
	L    []Symbol
	dout *bitvector.BitVector
	din  *bitvector.BitVector
}

// compact runs the single pass over the full (uncompacted) L, dout, din:
// a row survives into the new L exactly when it is the first incoming
// edge of its node (din[i] == 1) — every other row in that node shares
// the same outgoing symbol by construction (FindMinDBG only ever merges
// rows that also agree on L), so one representative row per node is
// enough to reproduce any of them, with BackwardStep's carried offset
// recovering which physical row was actually meant.
//
// dout and din are re-indexed by two independent cursors, p and q: p
// tracks new-L's own row space (dout[p] is written in lockstep with
// L[p], since both advance on din[i] == 1), while q tracks the number
// of node-starts seen on the exit side (din[q] is written whenever
// dout[i] == 1). MarkPrefixIntervals guarantees popcount(dout) ==
// popcount(din) over the full arrays (every node it collapses loses as
// many dout bits as din bits), so p and q finish at the same count and the two
// outputs end up the same length even though they were filled by
// different triggers.
func compact(L []Symbol, dout, din *bitvector.BitVector) compactResult {
	m0 := len(L)

	outL := make([]Symbol, 0, m0)
	outDout := bitvector.New(0)
	outDin := bitvector.New(0)

	for i := 0; i < m0; i++ {
		if din.GetBit(i) {
			outL = append(outL, L[i])
			outDout.Push(dout.GetBit(i))
		}
		if dout.GetBit(i) {
			outDin.Push(din.GetBit(i))
		}
	}
	outDout.Push(true)
	outDin.Push(true)

	return compactResult{L: outL, dout: outDout, din: outDin}
}
