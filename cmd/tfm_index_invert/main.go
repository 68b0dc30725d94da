// tfm_index_invert loads a PFWG (.L/.din/.dout) triple and reconstructs
// the original text from it, proving the tunneled index round-trips.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bebop/tfmindex/tfmindex"
)

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
		Name:  "tfm_index_invert",
		Usage: "reconstruct the original text from a tunneled FM-index",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "base path of the .L/.din/.dout files"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "path to write the reconstructed text (defaults to stdout)"},
		},
		Action: invert,
	}
}

func invert(c *cli.Context) error {
	idx, err := tfmindex.LoadPFWG(c.String("input"))
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	text, err := idx.Invert(context.Background())
	if err != nil {
		return fmt.Errorf("inverting index: %w", err)
	}

	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, text, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(text)
	return err
}
