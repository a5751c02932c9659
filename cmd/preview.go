package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"koinly2irpf/renderer"
)

// previewCmd renders the parsed report on the terminal without writing
// anything.
type previewCmd struct {
	wallets bool
	rows    bool
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "display a parsed report without writing the CSV" }
func (*previewCmd) Usage() string {
	return `k2i preview [-wallets] [-rows] <report.pdf>

  Parses the report and renders it as markdown: year-end balances,
  wallet groups and the final declaration rows. The section flags
  restrict the output to one section.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.wallets, "wallets", false, "only the wallet groups")
	f.BoolVar(&c.rows, "rows", false, "only the final declaration rows")
}

func (c *previewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: preview expects exactly one input file\n")
		return subcommands.ExitUsageError
	}

	report, err := processFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	var md string
	switch {
	case c.wallets:
		md = renderer.WalletsMarkdown(report)
	case c.rows:
		md = renderer.RowsMarkdown(report)
	default:
		md = renderer.ReportMarkdown(report)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
