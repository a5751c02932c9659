// Package cmd implements the CLI application to convert portfolio tax
// reports into declaration spreadsheets.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	koinly "koinly2irpf"
	"koinly2irpf/pdftext"
)

// Commands lists the subcommands of the application. A main package
// registers them all on its commander.
var Commands = []subcommands.Command{
	&convertCmd{},
	&batchCmd{},
	&previewCmd{},
	&checkPricesCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var noFallback = flag.Bool("no-fallback", false, "Fail on unparseable documents instead of substituting the built-in example dataset")
var forcedYear = flag.Int("year", 0, "Force the reporting year instead of deriving it from the document")

func options() koinly.Options {
	return koinly.Options{NoFallback: *noFallback, Year: *forcedYear}
}

// processFile extracts a document's text and runs the full pipeline on it.
// Plain text files are accepted next to PDFs, mostly for testing pipelines
// on extracted text.
func processFile(path string) (*koinly.Report, error) {
	var text string
	if pdftext.IsPDF(path) {
		var err error
		text, err = pdftext.Extract(path)
		if err != nil {
			return nil, err
		}
	} else {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", path, err)
		}
		text = string(content)
	}
	return koinly.ProcessText(path, text, options())
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
