// Package tfmindex implements the tunneled FM-index: a self-index built
// by collapsing redundant rows of a text's Burrows-Wheeler transform
// along runs that correspond to unbranching paths of an order-k de
// Bruijn graph, then navigating the collapsed structure with an
// offset-carrying backward step.
package tfmindex

import (
	"github.com/bebop/tfmindex/internal/wavelet"
)

// Symbol is the alphabet element type the index operates over. Raw text
// is promoted from bytes to Symbols on ingestion; terminator is always
// Symbol 0, so every other byte value is shifted up by one.
type Symbol = wavelet.Symbol

// terminator is the unique end-of-text sentinel appended to every text
// before its BWT is taken. Using a reserved Symbol rather than a "$"
// rune lets the index operate over arbitrary byte strings, not just
// printable text.
const terminator Symbol = 0

// lcModel pairs a wavelet-encoded last column with its cumulative count
// vector — the two structures every LF-mapping step in the index is
// built from, tunneled or not.
type lcModel struct {
	L *wavelet.Tree
	C []int
}

// buildC computes the cumulative count vector for L: C[s] is the number
// of positions in L strictly less than symbol s. C has length
// L.MaxSymbol()+2 so that C[C_len-1] == L.Len(), sized from the data
// itself rather than a fixed 256-or-65536 alphabet bound.
func buildC(L *wavelet.Tree) []int {
	maxSym := int(L.MaxSymbol())
	counts := make([]int, maxSym+1)
	for i := 0; i < L.Len(); i++ {
		counts[L.Access(i)]++
	}

	C := make([]int, maxSym+2)
	running := 0
	for s := 0; s <= maxSym; s++ {
		C[s] = running
		running += counts[s]
	}
	C[maxSym+1] = running
	return C
}

// encodeText promotes a raw byte string to Symbols with a terminator
// appended, shifting every byte up by one so Symbol 0 is reserved.
func encodeText(text []byte) []Symbol {
	out := make([]Symbol, len(text)+1)
	for i, b := range text {
		out[i] = Symbol(b) + 1
	}
	out[len(text)] = terminator
	return out
}

// decodeText reverses encodeText, dropping the terminator and shifting
// bytes back down.
func decodeText(symbols []Symbol) []byte {
	out := make([]byte, 0, len(symbols))
	for _, s := range symbols {
		if s == terminator {
			continue
		}
		out = append(out, byte(s-1))
	}
	return out
}
