package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"koinly2irpf/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation about the conversion" }
func (*topicCmd) Usage() string {
	return `k2i topic [<name>...]

  Shows documentation topics on the terminal: document formats, custody
  classification, cost attribution, the output layout. Without arguments
  the topic index is shown; "*" shows everything.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	doc, err := docs.Topics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		if all, lerr := docs.All(); lerr == nil {
			fmt.Fprintf(os.Stderr, "Available topics: %s\n", strings.Join(all, ", "))
		}
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
