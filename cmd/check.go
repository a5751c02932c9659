package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/subcommands"

	koinly "koinly2irpf"
	"koinly2irpf/renderer"
)

// checkPricesCmd compares year-end prices against the market.
type checkPricesCmd struct {
	threshold float64
}

func (*checkPricesCmd) Name() string     { return "check-prices" }
func (*checkPricesCmd) Synopsis() string { return "compare a report's prices with the market" }
func (*checkPricesCmd) Usage() string {
	return `k2i check-prices [-threshold <fraction>] <report.pdf>

  Fetches current BRL prices for the report's year-end assets and flags
  those whose document price deviates beyond the threshold. Year-end
  prices are historical, so a large deviation is normal; a price off by
  orders of magnitude usually means the document was parsed wrong.
`
}

func (c *checkPricesCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.threshold, "threshold", 0.5, "Deviation fraction above which an asset is flagged")
}

func (c *checkPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: check-prices expects exactly one input file\n")
		return subcommands.ExitUsageError
	}

	report, err := processFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	checks := koinly.CheckPrices(new(http.Client), report)
	if len(checks) == 0 {
		fmt.Println("No year-end asset has a known market id, nothing to check.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PriceChecksMarkdown(checks, c.threshold))
	return subcommands.ExitSuccess
}
