package cmd

import (
	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/model"
	"github.com/widgetlab/widget-cli/internal/output"
	"github.com/widgetlab/widget-cli/internal/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compare two snapshot files",
	Long: `Compare two snapshot files and report added, removed, and changed widgets.
Widgets are matched by a content hash of type, name, UID, and tree path, so
sequential ID shifts between snapshots don't show up as churn.

Example:
  widget-cli diff before.json after.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldTree, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	newTree, err := snapshot.Load(args[1])
	if err != nil {
		return err
	}

	diff := model.DiffByHash(model.Flatten(oldTree), model.Flatten(newTree))
	return output.Print(diff)
}
