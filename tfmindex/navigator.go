package tfmindex

import (
	"context"
	"fmt"

	"github.com/bebop/tfmindex/internal/bitvector"
)

// Position addresses a row of a tunneled index that is always safe to
// read directly: Row alone is enough for InverseSelect or PrecedingChar,
// never Row+Offset. Offset, when nonzero, is a vertical displacement
// BackwardStep recorded on some earlier tunnel entry and has not yet had
// occasion to apply; it rides along unconsumed until a later
// BackwardStep's tunnel-exit test folds it into a returned Row. A fresh
// Position always carries Offset 0.
type Position struct {
	Row    int
	Offset int
}

// Index is a constructed tunneled FM-index: the compacted L/C model
// plus the dout/din bitvectors its backward step navigates by.
type Index struct {
	model   lcModel
	dout    *bitvector.RSA
	din     *bitvector.RSA
	textLen int
	order   int
	nodes   int
}

// Len returns the length of the original text, terminator excluded.
func (idx *Index) Len() int {
	return idx.textLen
}

// TunnelOrder returns the de Bruijn graph order FindMinDBG chose during
// construction, for diagnostics. An index read back with LoadPFWG
// reports -1, since PFWG files do not record the order.
func (idx *Index) TunnelOrder() int {
	return idx.order
}

// NodeCount returns the number of de Bruijn graph nodes FindMinDBG
// found, for diagnostics. An index read back with LoadPFWG reports the
// number of set bits in its dout instead, sentinel included, since PFWG
// files do not record the node count.
func (idx *Index) NodeCount() int {
	return idx.nodes
}

// TunneledLen returns the number of rows in the compacted BWT, i.e. the
// size of the structure actually stored — the quantity that must be
// strictly less than Len()+1 for repetitive text to demonstrate the
// index is doing its job.
func (idx *Index) TunneledLen() int {
	return idx.model.L.Len()
}

// End returns the position corresponding to the text's terminator — the
// starting point for a full-text Invert. The terminator is the unique
// smallest symbol, so it always occupies row 0 both before and after
// compaction.
func (idx *Index) End() Position {
	return Position{Row: 0, Offset: 0}
}

// PrecedingChar returns the byte immediately preceding pos in the
// original text, without advancing the position. pos.Offset plays no
// part here — a Position's Row is always directly readable, pending or
// not. Panics if pos is out of range; recovered at the exported Invert
// boundary.
func (idx *Index) PrecedingChar(pos Position) byte {
	sym := idx.model.L.Access(pos.Row)
	return byte(sym - 1)
}

// BackwardStep follows one LF-mapping step from pos through the
// tunneled structure, returning the preceding position and the
// character consumed. pos.Row is always a row ready to read directly
// (either a node's representative row, or a row already corrected by a
// prior step's tunnel-exit test); pos.Offset, when nonzero, is a
// vertical displacement recorded on tunnel entry and not yet applied —
// it is consumed exactly once, by whichever later step's tunnel-exit
// test actually fires. The step:
//
//  1. inverse_select on L at the current row gives that row's rank and
//     symbol.
//  2. LF-maps to the row carrying that rank among occurrences of sym —
//     classical LF-mapping, computed directly on the compacted L.
//  3. Finds which din-delimited node that LF-mapped row belongs to.
//  4. Tunnel-entry test: if the LF-mapped row isn't the top of its
//     din-group, record how far below the top it sits as a pending
//     offset; otherwise leave any existing offset untouched.
//  5. Jumps to the dout-delimited exit row with the same node ordinal —
//     dout and din are built from the same node partition, so their
//     k-th set bits always name the same graph node.
//  6. Tunnel-exit test: if the row just past the exit row is also
//     inside this node's dout-group (i.e. the node still has more than
//     one physical exit), the exit is ambiguous without the pending
//     offset — apply it now and clear it. Otherwise leave it pending
//     for a later step.
//
// Panics (converted to an error by Invert) if pos addresses a row
// outside the index or a symbol absent from its alphabet; both
// indicate a malformed index rather than a user error.
func (idx *Index) BackwardStep(pos Position) (Position, byte) {
	rank, sym := idx.model.L.InverseSelect(pos.Row)
	row := idx.model.C[sym] + rank

	k := idx.din.Rank(true, row+1)
	offset := pos.Offset
	if !idx.din.Access(row) {
		top, ok := idx.din.Select(true, k-1)
		if !ok {
			panic(fmt.Sprintf("tfmindex: din has no entry-group %d for row %d", k, row))
		}
		offset = row - top
	}

	exitRow, ok := idx.dout.Select(true, k-1)
	if !ok {
		panic(fmt.Sprintf("tfmindex: dout has no exit-group %d for row %d", k, row))
	}

	if !idx.dout.Access(exitRow + 1) {
		exitRow += offset
		offset = 0
	}

	return Position{Row: exitRow, Offset: offset}, byte(sym - 1)
}

// Invert reconstructs the original text by walking BackwardStep Len()
// times from End(), collecting one character per step and reversing the
// result. The context is checked periodically so a caller can cancel a
// reconstruction over a very long text.
func (idx *Index) Invert(ctx context.Context) (text []byte, err error) {
	defer indexRecovery("Invert", &err)

	out := make([]byte, idx.textLen)
	pos := idx.End()
	for i := idx.textLen - 1; i >= 0; i-- {
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		next, ch := idx.BackwardStep(pos)
		out[i] = ch
		pos = next
	}
	return out, nil
}

// indexRecovery converts a panic raised during a navigation operation
// into an error: these panics only ever fire on a malformed index, never
// on caller input, so recovering at the exported boundary keeps that
// distinction without forcing every internal call site to thread errors
// through.
func indexRecovery(operation string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("tfmindex: %s: %v", operation, r)
	}
}
