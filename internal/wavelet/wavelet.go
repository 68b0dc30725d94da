// Package wavelet implements a wavelet tree over an integer alphabet,
// the succinct structure the tunneled BWT's last column L is stored as.
// It provides Access(i), Rank(c, i), Select(c, rank), and the combined
// InverseSelect(i) = (rank_{L[i]}(i), L[i]) the backward-step navigator
// is built on.
//
// The symbol type is uint16 rather than byte so it can represent both
// raw-byte BWTs and the occasional wider alphabet a PFWG-produced .L
// file may carry.
package wavelet

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/bebop/tfmindex/internal/bitvector"
)

// Symbol is an element of the integer alphabet L is drawn from.
type Symbol = uint16

// Tree is a wavelet tree over a sequence of Symbols.
type Tree struct {
	root   *node
	alpha  []charInfo
	length int
}

type node struct {
	data   *bitvector.RSA
	sym    *Symbol
	parent *node
	left   *node
	right  *node
}

func (n *node) isLeaf() bool {
	return n.sym != nil
}

type charInfo struct {
	sym     Symbol
	count   int
	path    *bitvector.BitVector
	pathLen int
}

// NewFromSymbols builds a wavelet tree over the given sequence.
func NewFromSymbols(symbols []Symbol) (*Tree, error) {
	if len(symbols) == 0 {
		return nil, errors.New("wavelet: sequence must not be empty")
	}

	alpha := charInfoDescByCount(symbols)
	root := build(0, alpha, symbols)

	// Alphabet of size 1: no branching ever occurs, so the root is a
	// leaf. Give it a trivial all-ones bitvector so Access/Rank/Select
	// still work uniformly through the root.
	if root.isLeaf() {
		bv := bitvector.New(len(symbols))
		for i := 0; i < bv.Len(); i++ {
			bv.SetBit(i, true)
		}
		root.data = bitvector.NewRSA(bv)
	}

	return &Tree{root: root, alpha: alpha, length: len(symbols)}, nil
}

// Len returns the number of symbols represented.
func (t *Tree) Len() int {
	return t.length
}

// MaxSymbol returns the largest symbol value present in the tree's
// alphabet. Used to size C from the actual data rather than a
// hard-coded alphabet bound.
func (t *Tree) MaxSymbol() Symbol {
	var max Symbol
	for _, a := range t.alpha {
		if a.sym > max {
			max = a.sym
		}
	}
	return max
}

// Access returns the i-th symbol of the original sequence.
func (t *Tree) Access(i int) Symbol {
	if t.root.isLeaf() {
		return *t.root.sym
	}

	curr := t.root
	for !curr.isLeaf() {
		bit := curr.data.Access(i)
		i = curr.data.Rank(bit, i)
		if bit {
			curr = curr.right
		} else {
			curr = curr.left
		}
	}
	return *curr.sym
}

// Rank returns the number of occurrences of sym in the first i symbols.
func (t *Tree) Rank(sym Symbol, i int) int {
	if t.root.isLeaf() {
		return t.root.data.Rank(true, i)
	}

	ci := t.lookup(sym)
	curr := t.root
	level := 0
	rank := i
	for !curr.isLeaf() {
		pathBit := getBit(ci.path, ci.pathLen, level)
		rank = curr.data.Rank(pathBit, rank)
		if pathBit {
			curr = curr.right
		} else {
			curr = curr.left
		}
		level++
	}
	return rank
}

// InverseSelect returns (rank_{L[i]}(i), L[i]) in a single descent,
// exactly the inverse_select primitive the backward-step navigator's
// LF-mapping step is built on.
func (t *Tree) InverseSelect(i int) (rank int, sym Symbol) {
	if t.root.isLeaf() {
		return t.root.data.Rank(true, i), *t.root.sym
	}

	curr := t.root
	for !curr.isLeaf() {
		bit := curr.data.Access(i)
		i = curr.data.Rank(bit, i)
		if bit {
			curr = curr.right
		} else {
			curr = curr.left
		}
	}
	return i, *curr.sym
}

// Select returns the position of the rank-th (0-indexed) occurrence of
// sym, panicking if no such occurrence exists — the wavelet tree was
// built from malformed data if that happens, a programming error per
// the navigator's failure semantics.
func (t *Tree) Select(sym Symbol, rank int) int {
	if t.root.isLeaf() {
		s, ok := t.root.data.Select(true, rank)
		if !ok {
			panic(fmt.Sprintf("wavelet: no bit of rank %d in root leaf", rank))
		}
		return s
	}

	ci := t.lookup(sym)
	curr := t.root
	level := 0
	for !curr.isLeaf() {
		pathBit := getBit(ci.path, ci.pathLen, level)
		if pathBit {
			curr = curr.right
		} else {
			curr = curr.left
		}
		level++
	}

	for curr.parent != nil {
		curr = curr.parent
		level--
		pathBit := getBit(ci.path, ci.pathLen, level)
		nextRank, ok := curr.data.Select(pathBit, rank)
		if !ok {
			panic(fmt.Sprintf("wavelet: no bit %t of rank %d while ascending for symbol %d", pathBit, rank, sym))
		}
		rank = nextRank
	}
	return rank
}

func (t *Tree) lookup(sym Symbol) charInfo {
	for i := range t.alpha {
		if t.alpha[i].sym == sym {
			return t.alpha[i]
		}
	}
	panic(fmt.Sprintf("wavelet: symbol %d not present in alphabet; tree is malformed", sym))
}

// Reconstruct returns the original sequence as a []Symbol by repeated
// Access calls. Used only for small-scale diagnostics/tests; production
// inversion goes through the tunneled navigator, not this tree.
func (t *Tree) Reconstruct() []Symbol {
	out := make([]Symbol, t.length)
	for i := range out {
		out[i] = t.Access(i)
	}
	return out
}

func build(level int, alpha []charInfo, symbols []Symbol) *node {
	if len(alpha) == 0 {
		return nil
	}
	if len(alpha) == 1 {
		return &node{sym: &alpha[0].sym}
	}

	leftAlpha, rightAlpha := partition(level, alpha)

	var leftSyms, rightSyms []Symbol
	bv := bitvector.New(len(symbols))
	for i, s := range symbols {
		if inAlpha(rightAlpha, s) {
			bv.SetBit(i, true)
			rightSyms = append(rightSyms, s)
		} else {
			leftSyms = append(leftSyms, s)
		}
	}

	root := &node{data: bitvector.NewRSA(bv)}
	left := build(level+1, leftAlpha, leftSyms)
	right := build(level+1, rightAlpha, rightSyms)
	root.left = left
	root.right = right
	if left != nil {
		left.parent = root
	}
	if right != nil {
		right.parent = root
	}
	return root
}

func inAlpha(alpha []charInfo, s Symbol) bool {
	for _, a := range alpha {
		if a.sym == s {
			return true
		}
	}
	return false
}

// partition splits the alphabet by the value of its path bit at the
// given level. Characters nearest the root drop out of recursion first,
// so the alphabet must already be sorted by descending frequency for
// this to minimize the tree's overall memory footprint.
func partition(level int, alpha []charInfo) (left, right []charInfo) {
	for _, a := range alpha {
		if getBit(a.path, a.pathLen, level) {
			right = append(right, a)
		} else {
			left = append(left, a)
		}
	}
	return left, right
}

func getBit(path *bitvector.BitVector, pathLen, level int) bool {
	return path.GetBit(pathLen - 1 - level)
}

func charInfoDescByCount(symbols []Symbol) []charInfo {
	counts := make(map[Symbol]int)
	for _, s := range symbols {
		counts[s]++
	}

	sorted := make([]charInfo, 0, len(counts))
	for s, c := range counts {
		sorted = append(sorted, charInfo{sym: s, count: c})
	}
	slices.SortFunc(sorted, func(a, b charInfo) bool {
		if a.count == b.count {
			return a.sym < b.sym
		}
		return a.count > b.count
	})

	pathLen := treeHeight(len(sorted))
	for i := range sorted {
		bv := bitvector.New(pathLen)
		encodePath(bv, uint64(i))
		sorted[i].path = bv
		sorted[i].pathLen = pathLen
	}
	return sorted
}

func encodePath(bv *bitvector.BitVector, n uint64) {
	for shift := 0; n>>shift > 0; shift++ {
		bv.SetBit(bv.Len()-1-shift, n>>shift%2 == 1)
	}
}

func treeHeight(alphaSize int) int {
	height := 0
	for (1 << height) < alphaSize {
		height++
	}
	if height == 0 {
		height = 1
	}
	return height
}
