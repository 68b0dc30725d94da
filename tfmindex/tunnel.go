package tfmindex

import (
	"fmt"

	"github.com/bebop/tfmindex/internal/bitvector"
	"github.com/bebop/tfmindex/internal/dbg"
	"github.com/bebop/tfmindex/internal/wavelet"
)

// tunnelResult is the fully tunneled index body: a compacted L/C model
// plus the dout/din bitvectors the navigator's backward step consumes.
type tunnelResult struct {
	model lcModel
	dout  *bitvector.BitVector
	din   *bitvector.BitVector
	order int
	nodes int
}

// tunnel reduces a raw (untunneled) BWT last column into its tunneled
// form: it finds the edge-minimal de Bruijn graph over rawL, expands it
// into dout/din, collapses redundant rows, and recomputes C from the
// resulting compacted L — never from a fixed alphabet bound, closing
// the sizing question a hard-coded 255-wide C vector would have left
// open for non-byte alphabets.
func tunnel(rawL []Symbol, opts dbg.Options) (tunnelResult, error) {
	rawTree, err := wavelet.NewFromSymbols(rawL)
	if err != nil {
		return tunnelResult{}, fmt.Errorf("tfmindex: tunnel: building wavelet tree over raw BWT: %w", err)
	}
	rawC := buildC(rawTree)

	res := dbg.FindMinDBG(rawTree, rawC, opts)
	dout, din := dbg.MarkPrefixIntervals(rawTree, rawC, res.B)

	cr := compact(rawL, dout, din)

	finalTree, err := wavelet.NewFromSymbols(cr.L)
	if err != nil {
		return tunnelResult{}, fmt.Errorf("tfmindex: tunnel: building wavelet tree over compacted BWT: %w", err)
	}
	finalC := buildC(finalTree)

	return tunnelResult{
		model: lcModel{L: finalTree, C: finalC},
		dout:  cr.dout,
		din:   cr.din,
		order: res.Order,
		nodes: res.NodeCount,
	}, nil
}
