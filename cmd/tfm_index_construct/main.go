// tfm_index_construct builds a tunneled FM-index from a raw text file
// and writes it out as a PFWG (.L/.din/.dout) triple.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bebop/tfmindex/alphabet"
	"github.com/bebop/tfmindex/internal/diag"
	"github.com/bebop/tfmindex/tfmindex"
)

var restrictedAlphabets = map[string]*alphabet.Alphabet{
	"dna":     alphabet.DNA,
	"rna":     alphabet.RNA,
	"protein": alphabet.Protein,
}

func main() {
	run(os.Args)
}

func run(args []string) {
	if err := application().Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "tfm_index_construct",
		Usage: "build a tunneled FM-index from a text file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path to the text file to index"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "base path for the .L/.din/.dout files"},
			&cli.IntFlag{Name: "min-order", Value: 2, Usage: "smallest de Bruijn graph order to search"},
			&cli.IntFlag{Name: "max-order", Value: 32, Usage: "largest de Bruijn graph order to search"},
			&cli.BoolFlag{Name: "debug", Usage: "enable verbose construction logging"},
			&cli.BoolFlag{Name: "report", Usage: "print a structure report after construction"},
			&cli.StringFlag{Name: "alphabet", Usage: "restrict input to a known alphabet (dna, rna, protein) and reject the first byte outside it"},
			&cli.StringFlag{Name: "cache-dir", Usage: "reuse a previously constructed PFWG triple for this text and order range instead of rebuilding it"},
		},
		Action: construct,
	}
}

func construct(c *cli.Context) error {
	logger := diag.New(c.Bool("debug"))

	text, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Debugf("read %d bytes from %s", len(text), c.String("input"))

	if name := c.String("alphabet"); name != "" {
		a, ok := restrictedAlphabets[name]
		if !ok {
			return fmt.Errorf("unknown alphabet %q (want dna, rna, or protein)", name)
		}
		if offset := a.ValidateBytes(text); offset != -1 {
			return fmt.Errorf("byte %d (%q) at offset %d is not in the %s alphabet", text[offset], text[offset], offset, name)
		}
	}

	opts := tfmindex.Options{
		MinDBGOrder: c.Int("min-order"),
		MaxDBGOrder: c.Int("max-order"),
		Debug:       c.Bool("debug"),
		CacheDir:    c.String("cache-dir"),
	}

	var idx *tfmindex.Index
	if opts.CacheDir != "" {
		idx, err = tfmindex.ConstructCached(text, opts)
	} else {
		idx, err = tfmindex.Construct(context.Background(), text, opts)
	}
	if err != nil {
		return fmt.Errorf("constructing index: %w", err)
	}
	logger.Debugf("tunneled %d rows down to %d (order %d, %d nodes)",
		len(text)+1, idx.TunneledLen(), idx.TunnelOrder(), idx.NodeCount())

	var reportOut io.Writer
	if c.Bool("report") {
		reportOut = os.Stdout
	}
	n, err := idx.Save(c.String("output"), reportOut)
	if err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	logger.Debugf("wrote %d bytes to %s.{L,dout,din}", n, c.String("output"))

	return nil
}
