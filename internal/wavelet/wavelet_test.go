package wavelet

import (
	"reflect"
	"testing"
)

func TestNewFromSymbolsEmpty(t *testing.T) {
	if _, err := NewFromSymbols(nil); err == nil {
		t.Fatalf("expected an error building a tree over an empty sequence")
	}
}

func TestAccess(t *testing.T) {
	symbols := []Symbol{3, 1, 4, 1, 5, 9, 2, 6}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range symbols {
		if got := tree.Access(i); got != want {
			t.Fatalf("Access(%d): expected %d, got %d", i, want, got)
		}
	}
}

func TestRank(t *testing.T) {
	symbols := []Symbol{1, 2, 1, 1, 2, 3, 1}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type testCase struct {
		sym      Symbol
		i        int
		expected int
	}
	cases := []testCase{
		{1, 0, 0},
		{1, 1, 1},
		{1, 4, 3},
		{1, 7, 4},
		{2, 7, 2},
		{3, 7, 1},
	}
	for _, c := range cases {
		if got := tree.Rank(c.sym, c.i); got != c.expected {
			t.Fatalf("Rank(%d, %d): expected %d, got %d", c.sym, c.i, c.expected, got)
		}
	}
}

func TestSelect(t *testing.T) {
	symbols := []Symbol{1, 2, 1, 1, 2, 3, 1}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type testCase struct {
		sym      Symbol
		rank     int
		expected int
	}
	cases := []testCase{
		{1, 0, 0},
		{1, 1, 2},
		{1, 3, 6},
		{2, 0, 1},
		{2, 1, 4},
		{3, 0, 5},
	}
	for _, c := range cases {
		if got := tree.Select(c.sym, c.rank); got != c.expected {
			t.Fatalf("Select(%d, %d): expected %d, got %d", c.sym, c.rank, c.expected, got)
		}
	}
}

func TestInverseSelectMatchesAccessAndRank(t *testing.T) {
	symbols := []Symbol{3, 1, 4, 1, 5, 9, 2, 6, 1, 3, 3}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range symbols {
		rank, sym := tree.InverseSelect(i)
		if sym != tree.Access(i) {
			t.Fatalf("InverseSelect(%d) symbol %d disagrees with Access %d", i, sym, tree.Access(i))
		}
		if rank != tree.Rank(sym, i) {
			t.Fatalf("InverseSelect(%d) rank %d disagrees with Rank %d", i, rank, tree.Rank(sym, i))
		}
	}
}

func TestSingleSymbolAlphabet(t *testing.T) {
	symbols := []Symbol{7, 7, 7, 7}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Access(2) != 7 {
		t.Fatalf("expected symbol 7 at every position")
	}
	if tree.Rank(7, 4) != 4 {
		t.Fatalf("expected rank 4 for the sole symbol over the whole sequence")
	}
	if tree.MaxSymbol() != 7 {
		t.Fatalf("expected MaxSymbol 7, got %d", tree.MaxSymbol())
	}
}

func TestReconstruct(t *testing.T) {
	symbols := []Symbol{5, 2, 2, 8, 1, 5}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tree.Reconstruct(); !reflect.DeepEqual(got, symbols) {
		t.Fatalf("Reconstruct: expected %v, got %v", symbols, got)
	}
}

func TestLenAndMaxSymbol(t *testing.T) {
	symbols := []Symbol{10, 2, 300, 2}
	tree, err := NewFromSymbols(symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Len() != len(symbols) {
		t.Fatalf("expected Len %d, got %d", len(symbols), tree.Len())
	}
	if tree.MaxSymbol() != 300 {
		t.Fatalf("expected MaxSymbol 300, got %d", tree.MaxSymbol())
	}
}
