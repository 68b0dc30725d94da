package tfmindex

import (
	"fmt"
	"io"
	"os"

	"github.com/koeng101/svb"

	"github.com/bebop/tfmindex/internal/bitvector"
	"github.com/bebop/tfmindex/internal/diag"
	"github.com/bebop/tfmindex/internal/wavelet"
)

// ErrDimensionMismatch is returned by LoadPFWG when a PFWG triple's
// .din or .dout file is not the size that the row count in the .L
// header calls for. LLen is that row count; DoutLen and DinLen are the
// sizes in bytes of the .dout and .din files.
type ErrDimensionMismatch struct {
	LLen, DoutLen, DinLen int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("tfmindex: PFWG dimension mismatch: L has %d rows, dout has %d bytes, din has %d bytes",
		e.LLen, e.DoutLen, e.DinLen)
}

// pfwgHeader is a small fixed set of counts every .L file is prefixed
// with, varint-packed with svb: the original text length (terminator
// excluded) and the number of rows in the tunneled L. dout/din's row
// counts are implied (rows+1) and re-checked against their own files'
// sizes on load.
type pfwgHeader struct {
	textLen int
	rows    int
}

func (h pfwgHeader) encode() []byte {
	return svb.Encode([]uint32{uint32(h.textLen), uint32(h.rows)})
}

func decodeHeader(data []byte) (pfwgHeader, []byte, error) {
	values, n, err := svb.Decode(data, 2)
	if err != nil {
		return pfwgHeader{}, nil, fmt.Errorf("tfmindex: decoding PFWG header: %w", err)
	}
	return pfwgHeader{textLen: int(values[0]), rows: int(values[1])}, data[n:], nil
}

// Save writes the index out as a PFWG triple: basePath+".L" (a varint
// header followed by the tunneled last column, two bytes per symbol,
// big-endian), basePath+".dout", and basePath+".din" (MSB-first packed
// bitvectors). C is never written — LoadPFWG recomputes it from L, the
// same way Construct does, so a PFWG file pair is always self-consistent
// even if produced by a different alphabet than the one now loading it.
// Rank/select support over dout/din is likewise rebuilt on load rather
// than serialized: both are recomputed from the packed bits in time
// linear in the file size, so persisting them would only trade disk
// space for a load-time saving this module's index sizes don't need.
//
// Save returns the number of bytes written across the three files. When
// report is non-nil, it also renders a structure-tree table describing
// the saved index (text length, tunneled row count, collapse ratio, de
// Bruijn order, node count) to report — pass nil to skip it.
func (idx *Index) Save(basePath string, report io.Writer) (bytesWritten int64, err error) {
	header := pfwgHeader{textLen: idx.textLen, rows: idx.model.L.Len()}
	lBytes := append(header.encode(), encodeSymbols(idx.model.L.Reconstruct())...)
	doutBytes := idx.doutBits().ToPackedBytes()
	dinBytes := idx.dinBits().ToPackedBytes()

	if err := os.WriteFile(basePath+".L", lBytes, 0o644); err != nil {
		return 0, fmt.Errorf("tfmindex: Save: writing .L: %w", err)
	}
	if err := os.WriteFile(basePath+".dout", doutBytes, 0o644); err != nil {
		return int64(len(lBytes)), fmt.Errorf("tfmindex: Save: writing .dout: %w", err)
	}
	if err := os.WriteFile(basePath+".din", dinBytes, 0o644); err != nil {
		return int64(len(lBytes) + len(doutBytes)), fmt.Errorf("tfmindex: Save: writing .din: %w", err)
	}
	bytesWritten = int64(len(lBytes) + len(doutBytes) + len(dinBytes))

	if report != nil {
		diag.WriteReport(report, diag.IndexStats{
			TextLen:     idx.Len(),
			TunneledLen: idx.TunneledLen(),
			Order:       idx.TunnelOrder(),
			NodeCount:   idx.NodeCount(),
		})
	}
	return bytesWritten, nil
}

// LoadPFWG reads a previously-saved PFWG triple and rebuilds an Index
// from it. C is recomputed from the loaded L rather than sized against
// any fixed alphabet bound, so a PFWG produced over a wide (post-.L
// 16-bit) alphabet loads just as correctly as one produced over raw
// bytes.
func LoadPFWG(basePath string) (idx *Index, err error) {
	defer indexRecovery("LoadPFWG", &err)

	lRaw, err := os.ReadFile(basePath + ".L")
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: reading .L: %w", err)
	}
	header, lPayload, err := decodeHeader(lRaw)
	if err != nil {
		return nil, err
	}
	symbols, err := decodeSymbols(lPayload, header.rows)
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: decoding .L symbols: %w", err)
	}

	doutRaw, err := os.ReadFile(basePath + ".dout")
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: reading .dout: %w", err)
	}
	dinRaw, err := os.ReadFile(basePath + ".din")
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: reading .din: %w", err)
	}

	if packed := (header.rows + 8) / 8; len(doutRaw) != packed || len(dinRaw) != packed {
		return nil, &ErrDimensionMismatch{LLen: header.rows, DoutLen: len(doutRaw), DinLen: len(dinRaw)}
	}
	doutBV, err := bitvector.FromPackedBytes(doutRaw, header.rows+1)
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: unpacking .dout: %w", err)
	}
	dinBV, err := bitvector.FromPackedBytes(dinRaw, header.rows+1)
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: unpacking .din: %w", err)
	}
	if doutBV.PopCount() != dinBV.PopCount() {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: dout has %d set bits, din has %d", doutBV.PopCount(), dinBV.PopCount())
	}

	L, err := wavelet.NewFromSymbols(symbols)
	if err != nil {
		return nil, fmt.Errorf("tfmindex: LoadPFWG: building wavelet tree: %w", err)
	}
	C := buildC(L)

	return &Index{
		model:   lcModel{L: L, C: C},
		dout:    bitvector.NewRSA(doutBV),
		din:     bitvector.NewRSA(dinBV),
		textLen: header.textLen,
		order:   -1, // unknown: PFWG files don't record which order produced them
		nodes:   doutBV.PopCount(),
	}, nil
}

func (idx *Index) doutBits() *bitvector.BitVector {
	return idx.dout.Bits()
}

func (idx *Index) dinBits() *bitvector.BitVector {
	return idx.din.Bits()
}

func encodeSymbols(symbols []Symbol) []byte {
	out := make([]byte, len(symbols)*2)
	for i, s := range symbols {
		out[i*2] = byte(s >> 8)
		out[i*2+1] = byte(s)
	}
	return out
}

func decodeSymbols(data []byte, count int) ([]Symbol, error) {
	if len(data) < count*2 {
		return nil, fmt.Errorf("tfmindex: symbol payload has %d bytes, need %d for %d symbols", len(data), count*2, count)
	}
	out := make([]Symbol, count)
	for i := 0; i < count; i++ {
		out[i] = Symbol(data[i*2])<<8 | Symbol(data[i*2+1])
	}
	return out, nil
}
