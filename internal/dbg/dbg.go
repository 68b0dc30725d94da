// Package dbg implements the de-Bruijn-graph reduction step of tunneled
// BWT construction: finding an edge-minimal order-k de Bruijn graph over
// a BWT's wavelet-encoded last column, and expanding its node partition
// into the paired dout/din bitvectors the compactor consumes.
//
// The exact DBG-minimization strategy is left to the implementer by the
// tunneling-BWT literature this package follows (see DESIGN.md); the
// search here tracks incremental k-length context the same way an
// incremental k-mer counter would, but walks the BWT's own LF/FL
// permutations instead of a raw string buffer, since the whole point of
// a BWT-based index is never touching the original text again.
package dbg

import (
	"github.com/bebop/tfmindex/internal/bitvector"
	"github.com/bebop/tfmindex/internal/wavelet"
)

// Options bounds the order-k search FindMinDBG performs.
type Options struct {
	MinOrder int
	MaxOrder int
}

// DefaultOptions mirrors the construction pipeline's defaults.
func DefaultOptions() Options {
	return Options{MinOrder: 2, MaxOrder: 32}
}

// Result reports the chosen order-k de Bruijn graph, for logging, plus
// the boundary bitvector B the prefix-interval marker consumes.
type Result struct {
	B         *bitvector.BitVector
	Order     int
	NodeCount int
}

// FindMinDBG computes B, a bitvector of length m = L.Len() marking the
// first row of each node interval of an order-k de Bruijn graph built
// from L and C, searching k over [opts.MinOrder, opts.MaxOrder] for the
// grouping that collapses the most rows while remaining a faithful,
// round-trippable representation of the text L encodes.
//
// A node interval is only ever merged into a run of dout/din zeros
// (see MarkPrefixIntervals) when every row inside it also shares L's own
// symbol — the classical run-length-BWT sufficient condition for an
// LF-image to be contiguous and order-preserving — and when that LF-image
// is itself one node interval, which MarkPrefixIntervals checks before it
// collapses anything. FindMinDBG folds the symbol requirement directly
// into B, so every candidate k it considers yields a navigable index; the
// search over k therefore picks the order that yields the smallest node
// count, not a safety search, and reports the order purely so Construct
// can log a meaningful k.
func FindMinDBG(L *wavelet.Tree, C []int, opts Options) Result {
	if L == nil || L.Len() == 0 {
		return Result{B: bitvector.New(0), Order: opts.MinOrder, NodeCount: 0}
	}
	m := L.Len()

	lrow := materialize(L)
	frow := buildFrow(C, m)
	lf := buildLF(L, C)
	fl := invert(lf)

	minOrder := opts.MinOrder
	if minOrder < 1 {
		minOrder = 1
	}
	maxOrder := opts.MaxOrder
	if maxOrder < minOrder {
		maxOrder = minOrder
	}

	best := Result{}
	haveBest := false
	for k := minOrder; k <= maxOrder; k++ {
		b := boundariesForOrder(frow, fl, lrow, fl != nil, k, m)
		count := b.PopCount()
		if !haveBest || count < best.NodeCount {
			best = Result{B: b, Order: k, NodeCount: count}
			haveBest = true
		}
	}
	return best
}

func boundariesForOrder(frow []wavelet.Symbol, fl []int, lrow []wavelet.Symbol, _ bool, k, m int) *bitvector.BitVector {
	b := bitvector.New(m)
	b.SetBit(0, true)
	for i := 1; i < m; i++ {
		if lrow[i] != lrow[i-1] || !sameContext(frow, fl, i, i-1, k) {
			b.SetBit(i, true)
		}
	}
	return b
}

// sameContext reports whether rows a and b share the same length-k
// forward context, walking the FL permutation (the inverse of the
// classical LF-mapping) to read off successive characters of each row's
// own suffix, one at a time, without ever touching the original text.
func sameContext(frow []wavelet.Symbol, fl []int, a, b, k int) bool {
	for step := 0; step < k; step++ {
		if frow[a] != frow[b] {
			return false
		}
		a = fl[a]
		b = fl[b]
	}
	return true
}

func materialize(L *wavelet.Tree) []wavelet.Symbol {
	m := L.Len()
	out := make([]wavelet.Symbol, m)
	for i := 0; i < m; i++ {
		out[i] = L.Access(i)
	}
	return out
}

// buildFrow reconstructs the BWT's first column, one symbol per row,
// from the cumulative count vector C. F is always sorted, so each
// symbol c occupies the contiguous range [C[c], C[c+1]).
func buildFrow(C []int, m int) []wavelet.Symbol {
	frow := make([]wavelet.Symbol, m)
	for sym := 0; sym < len(C)-1; sym++ {
		for i := C[sym]; i < C[sym+1]; i++ {
			frow[i] = wavelet.Symbol(sym)
		}
	}
	return frow
}

// buildLF computes the classical LF-mapping for every row: lf[i] =
// C[L[i]] + rank_{L[i]}(i). Stepping lf moves one character backward
// through the original text.
func buildLF(L *wavelet.Tree, C []int) []int {
	m := L.Len()
	lf := make([]int, m)
	for i := 0; i < m; i++ {
		rank, sym := L.InverseSelect(i)
		lf[i] = C[sym] + rank
	}
	return lf
}

// invert returns fl such that fl[lf[i]] = i for all i — the FL-mapping,
// which moves one character forward through the original text.
func invert(lf []int) []int {
	fl := make([]int, len(lf))
	for i, v := range lf {
		fl[v] = i
	}
	return fl
}
