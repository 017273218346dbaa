package cmd

import (
	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/output"
)

var queryCmd = &cobra.Command{
	Use:   "query SELECTOR",
	Short: "Resolve a selector and print every match",
	Long: `Resolve a cascaded selector against the snapshot and print every matching
widget in document order. No matches prints an empty result; only selector
parse errors fail.

Examples:
  widget-cli query --snapshot app.json "Dialog >> text=Save"
  widget-cli query --snapshot app.json "Panel > Button:enabled"
  widget-cli query --snapshot app.json "name=orders >> row[contains='pending']"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Int("limit", 0, "Max matches to print (0 = unlimited)")
}

// queryResult is the top-level output of the query command.
type queryResult struct {
	Selector string     `yaml:"selector" json:"selector"`
	Total    int        `yaml:"total"    json:"total"`
	Matches  []nodeInfo `yaml:"matches"  json:"matches"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	tree, err := loadTree(cmd)
	if err != nil {
		return err
	}

	matches, err := newResolver(cmd).FindAll(tree, args[0])
	if err != nil {
		return err
	}

	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return output.Print(queryResult{
		Selector: args[0],
		Total:    total,
		Matches:  nodeInfosFrom(matches),
	})
}
