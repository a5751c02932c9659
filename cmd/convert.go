package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	koinly "koinly2irpf"
)

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct {
	output string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert one report into a declaration CSV" }
func (*convertCmd) Usage() string {
	return `k2i convert [-o <file>] <report.pdf>

  Parses the report and writes the declaration CSV next to it
  (or to the -o path).
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output CSV path, defaults to <input>_final.csv")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: convert expects exactly one input file\n")
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)

	report, err := processFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	out := c.output
	if out == "" {
		out = koinly.OutputName(input)
	}
	fl, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", out, err)
		return subcommands.ExitFailure
	}
	defer fl.Close()

	if err := koinly.WriteCSV(fl, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully wrote %s\n", out)
	return subcommands.ExitSuccess
}
