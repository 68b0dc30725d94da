package tfmindex

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slices"

	"github.com/bebop/tfmindex/internal/bitvector"
	"github.com/bebop/tfmindex/internal/dbg"
)

// Options configures index construction.
type Options struct {
	// MinDBGOrder and MaxDBGOrder bound the de Bruijn graph order
	// FindMinDBG searches over. Zero values fall back to 2 and 32.
	MinDBGOrder int
	MaxDBGOrder int

	// CacheDir, if set, is where ConstructCached looks for and writes a
	// previously built PFWG triple keyed off the input text and order
	// range, so repeated construction over the same input skips the
	// sort/tunnel pipeline entirely.
	CacheDir string

	// Debug enables verbose construction logging.
	Debug bool
}

func (o Options) dbgOptions() dbg.Options {
	minOrder, maxOrder := o.MinDBGOrder, o.MaxDBGOrder
	if minOrder <= 0 {
		minOrder = 2
	}
	if maxOrder <= 0 {
		maxOrder = 32
	}
	return dbg.Options{MinOrder: minOrder, MaxOrder: maxOrder}
}

func (o Options) cacheDir() string {
	if o.CacheDir != "" {
		return o.CacheDir
	}
	return os.TempDir()
}

// Construct builds a tunneled FM-index over text. The pipeline:
//
//  1. Encode text to Symbols, appending the terminator.
//  2. Build the raw (untunneled) BWT by suffix-sorting the rotations.
//  3. Run the de Bruijn graph reduction (internal/dbg) to find the
//     node partition, expand it into dout/din, and collapse redundant
//     rows.
//
// Construction is not itself interruptible mid-sort; ctx is honored
// between pipeline stages so a caller can still cancel before the
// (usually dominant) sort begins or before the tunneling pass starts.
func Construct(ctx context.Context, text []byte, opts Options) (idx *Index, err error) {
	defer indexRecovery("Construct", &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbols := encodeText(text)
	rawL, _ := buildRawBWT(symbols)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tr, err := tunnel(rawL, opts.dbgOptions())
	if err != nil {
		return nil, fmt.Errorf("tfmindex: Construct: %w", err)
	}

	return &Index{
		model:   tr.model,
		dout:    bitvector.NewRSA(tr.dout),
		din:     bitvector.NewRSA(tr.din),
		textLen: len(text),
		order:   tr.order,
		nodes:   tr.nodes,
	}, nil
}

// buildRawBWT suffix-sorts the rotations of symbols (which must already
// carry a unique terminal symbol) and returns the resulting last column
// alongside the suffix array, naive-sort style: compare whole suffixes
// with slices.Compare rather than building a linear-time suffix array.
// This favors a simple O(n^2 log n) sort over pulling in a SA-IS
// implementation; texts large enough for that complexity to matter are
// out of scope here.
func buildRawBWT(symbols []Symbol) (lastColumn []Symbol, sa []int) {
	n := len(symbols)
	sa = make([]int, n)
	for i := range sa {
		sa[i] = i
	}

	slices.SortFunc(sa, func(i, j int) bool {
		return slices.Compare(symbols[i:], symbols[j:]) < 0
	})

	lastColumn = make([]Symbol, n)
	for rank, start := range sa {
		prev := start - 1
		if prev < 0 {
			prev = n - 1
		}
		lastColumn[rank] = symbols[prev]
	}
	return lastColumn, sa
}
