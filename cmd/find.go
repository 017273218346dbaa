package cmd

import (
	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find SELECTOR",
	Short: "Resolve a selector that must match exactly one widget",
	Long: `Resolve a cascaded selector that must land on exactly one widget. Zero
matches or multiple matches is an error; the ambiguous case lists candidate
widgets so the selector can be refined without another query.

Examples:
  widget-cli find --snapshot app.json "#submitBtn"
  widget-cli find --snapshot app.json "Dialog >> name=user >> TextField"`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	tree, err := loadTree(cmd)
	if err != nil {
		return err
	}

	match, err := newResolver(cmd).FindOne(tree, args[0])
	if err != nil {
		return err
	}

	return output.Print(nodeInfoFrom(match))
}
