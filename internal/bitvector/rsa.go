package bitvector

import "math/bits"

/*
RSA stands for (R)ank, (S)elect, (A)ccess. An RSA wraps a BitVector with
the auxiliary structures needed to answer all three queries in O(1),
using a Jacobson-style rank index:

 1. Partition the bitvector into one "chunk" per backing word.
 2. For each chunk, store the cumulative rank of set bits up to (but
    not including) it.
 3. Within a chunk, count the remaining set bits with a single popcount.

rank(i) = chunk.cumulativeRank + popcount(word, bitOffset)

This is the word-granularity instance of Jacobson rank: sub-chunking
further (the classical two-level scheme) only pays off once chunks span
many words, which isn't the case for an index at this word size.

Select is answered with a direct position map built in one linear pass
over the bitvector; this trades memory for simplicity rather than a
Clark's-select-style succinct encoding.
*/

// RSA wraps a BitVector with O(1) rank, select, and access support. The
// BitVector must not be mutated after Rebind is called on it; doing so
// silently desynchronizes the rank/select structures from the data they
// describe.
type RSA struct {
	bv            *BitVector
	totalOnesRank int
	cumulativeOnes []int // cumulativeOnes[w] = popcount of all bits before word w
	oneSelectMap  map[int]int
	zeroSelectMap map[int]int
}

// NewRSA builds rank/select support over bv.
func NewRSA(bv *BitVector) *RSA {
	r := &RSA{}
	r.Rebind(bv)
	return r
}

// Rebind reconstructs this RSA's auxiliary structures against bv. Call
// this whenever the underlying BitVector has been replaced or reloaded
// (e.g. after deserialization) so the non-owning back-reference and its
// cached ranks stay in sync with the data actually being queried.
func (r *RSA) Rebind(bv *BitVector) {
	r.bv = bv
	r.cumulativeOnes, r.totalOnesRank = buildJacobsonRank(bv)
	r.oneSelectMap, r.zeroSelectMap = buildSelectMaps(bv)
}

// Rank returns the number of bits equal to val in [0, i).
func (r *RSA) Rank(val bool, i int) int {
	if i >= r.bv.Len() {
		if val {
			return r.totalOnesRank
		}
		return r.bv.Len() - r.totalOnesRank
	}
	if i <= 0 {
		return 0
	}

	wordIdx := i / wordSize
	cumulative := r.cumulativeOnes[wordIdx]

	word := r.bv.getWord(wordIdx)
	bitOffset := i % wordSize
	shiftRightAmount := uint(wordSize - bitOffset)

	if val {
		remaining := word >> shiftRightAmount
		return cumulative + bits.OnesCount64(remaining)
	}
	remaining := (^word) >> shiftRightAmount
	return (wordIdx*wordSize - cumulative) + bits.OnesCount64(remaining)
}

// Select returns the position of the rank-th bit (0-indexed) equal to
// val, or false if no such bit exists.
func (r *RSA) Select(val bool, rank int) (int, bool) {
	if val {
		i, ok := r.oneSelectMap[rank]
		return i, ok
	}
	i, ok := r.zeroSelectMap[rank]
	return i, ok
}

// Access returns the value of the bit at offset i.
func (r *RSA) Access(i int) bool {
	return r.bv.GetBit(i)
}

// Bits returns the BitVector this RSA was built over, for callers (such
// as serialization) that need the raw bits rather than rank/select.
func (r *RSA) Bits() *BitVector {
	return r.bv
}

func buildJacobsonRank(bv *BitVector) (cumulativeOnes []int, totalRank int) {
	cumulativeOnes = make([]int, len(bv.words))
	running := 0
	for w := 0; w < len(bv.words); w++ {
		cumulativeOnes[w] = running
		running += bits.OnesCount64(bv.getWord(w))
	}
	return cumulativeOnes, running
}

func buildSelectMaps(bv *BitVector) (oneSelectMap, zeroSelectMap map[int]int) {
	oneSelectMap = make(map[int]int)
	zeroSelectMap = make(map[int]int)
	oneCount, zeroCount := 0, 0
	for i := 0; i < bv.Len(); i++ {
		if bv.GetBit(i) {
			oneSelectMap[oneCount] = i
			oneCount++
		} else {
			zeroSelectMap[zeroCount] = i
			zeroCount++
		}
	}
	return oneSelectMap, zeroSelectMap
}
