package cmd

import (
	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/output"
	"github.com/widgetlab/widget-cli/internal/selector"
)

var explainCmd = &cobra.Command{
	Use:   "explain SELECTOR",
	Short: "Show how a selector tokenizes without resolving it",
	Long: `Tokenize a cascaded selector and print its segments: which engine each one
uses, its combinator, and where the capture marker sits. Needs no snapshot,
so it is the quickest way to debug a selector that fails to parse or
matches the wrong thing.

Examples:
  widget-cli explain "Panel >> *Table > row[index=2] >> cell[col=1]"
  widget-cli explain "xpath=descendant::Button[@name='save']"`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	result, err := selector.Explain(args[0])
	if err != nil {
		return err
	}
	return output.Print(result)
}
