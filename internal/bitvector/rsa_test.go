package bitvector

import "testing"

func buildTestRSA(bits []bool) *RSA {
	bv := New(len(bits))
	for i, b := range bits {
		bv.SetBit(i, b)
	}
	return NewRSA(bv)
}

func TestRSARank(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true}
	r := buildTestRSA(bits)

	type testCase struct {
		val      bool
		i        int
		expected int
	}
	cases := []testCase{
		{true, 0, 0},
		{true, 1, 1},
		{true, 3, 2},
		{true, 4, 3},
		{true, 10, 6},
		{false, 0, 0},
		{false, 2, 1},
		{false, 10, 4},
	}
	for _, c := range cases {
		if got := r.Rank(c.val, c.i); got != c.expected {
			t.Fatalf("Rank(%t, %d): expected %d, got %d", c.val, c.i, c.expected, got)
		}
	}
}

func TestRSASelect(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true}
	r := buildTestRSA(bits)

	type testCase struct {
		val      bool
		rank     int
		expected int
	}
	cases := []testCase{
		{true, 0, 0},
		{true, 1, 2},
		{true, 2, 3},
		{true, 5, 9},
		{false, 0, 1},
		{false, 1, 4},
	}
	for _, c := range cases {
		got, ok := r.Select(c.val, c.rank)
		if !ok {
			t.Fatalf("Select(%t, %d): expected a match", c.val, c.rank)
		}
		if got != c.expected {
			t.Fatalf("Select(%t, %d): expected %d, got %d", c.val, c.rank, c.expected, got)
		}
	}
}

func TestRSASelectNotFound(t *testing.T) {
	r := buildTestRSA([]bool{false, false, false})
	if _, ok := r.Select(true, 0); ok {
		t.Fatalf("expected no match for a bitvector with no set bits")
	}
}

func TestRSAAccess(t *testing.T) {
	bits := []bool{true, false, true}
	r := buildTestRSA(bits)
	for i, want := range bits {
		if got := r.Access(i); got != want {
			t.Fatalf("Access(%d): expected %t, got %t", i, want, got)
		}
	}
}

func TestRSABitsRoundTrip(t *testing.T) {
	bv := New(5)
	bv.SetBit(1, true)
	bv.SetBit(4, true)
	r := NewRSA(bv)

	if r.Bits() != bv {
		t.Fatalf("expected Bits() to return the exact backing BitVector")
	}
}

func TestRSARebind(t *testing.T) {
	bv1 := New(4)
	bv1.SetBit(0, true)
	r := NewRSA(bv1)

	bv2 := New(4)
	bv2.SetBit(0, true)
	bv2.SetBit(1, true)
	r.Rebind(bv2)

	if got := r.Rank(true, 4); got != 2 {
		t.Fatalf("expected Rebind to reflect the new vector's rank of 2, got %d", got)
	}
}
