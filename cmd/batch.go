package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	koinly "koinly2irpf"
	"koinly2irpf/pdftext"
)

// batchCmd converts every PDF of a directory.
type batchCmd struct {
	dir string
}

func (*batchCmd) Name() string     { return "batch" }
func (*batchCmd) Synopsis() string { return "convert every report in a directory" }
func (*batchCmd) Usage() string {
	return `k2i batch [-dir <directory>]

  Converts every PDF found in the directory (non-recursive). Failing
  documents are reported and skipped, the rest of the batch continues.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Directory to scan for PDF reports")
}

func (c *batchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory %q: %v\n", c.dir, err)
		return subcommands.ExitFailure
	}

	converted, failed := 0, 0
	for _, e := range entries {
		if e.IsDir() || !pdftext.IsPDF(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Interrupted after %d file(s)\n", converted)
			return subcommands.ExitFailure
		}

		input := filepath.Join(c.dir, e.Name())
		report, err := processFile(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", input, err)
			failed++
			continue
		}
		out, err := koinly.ExportFile(input, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting %q: %v\n", input, err)
			failed++
			continue
		}
		fmt.Printf("Successfully wrote %s\n", out)
		converted++
	}

	if converted == 0 && failed == 0 {
		fmt.Fprintf(os.Stderr, "No PDF reports found in %q\n", c.dir)
		return subcommands.ExitFailure
	}
	fmt.Printf("Converted %d file(s), %d failure(s)\n", converted, failed)
	// per-file failures do not fail the batch as long as something converted
	if converted == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
