// pfwg inspects a PFWG (.L/.din/.dout) triple without reconstructing the
// text, reporting its shape and checking that its three files agree on
// row count.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bebop/tfmindex/internal/diag"
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
		Name:  "pfwg",
		Usage: "inspect a PFWG (.L/.din/.dout) tunneled-index triple",
		Commands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "print a structure report for a PFWG triple",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "base path of the .L/.din/.dout files"},
				},
				Action: inspect,
			},
		},
	}
}

func inspect(c *cli.Context) error {
	idx, err := tfmindex.LoadPFWG(c.String("input"))
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	diag.WriteReport(os.Stdout, diag.IndexStats{
		TextLen:     idx.Len(),
		TunneledLen: idx.TunneledLen(),
		Order:       idx.TunnelOrder(),
		NodeCount:   idx.NodeCount(),
	})
	return nil
}
