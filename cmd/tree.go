package cmd

import (
	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/model"
	"github.com/widgetlab/widget-cli/internal/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the widget tree snapshot",
	Long: `Print the snapshot's widget tree, scoped by --root and --max-depth. With
--flat, widgets are listed with a path breadcrumb instead of nesting, which
is easier to grep and to diff.`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Bool("flat", false, "Print a flat list with path breadcrumbs")
}

func runTree(cmd *cobra.Command, args []string) error {
	flat, _ := cmd.Flags().GetBool("flat")

	tree, err := loadTree(cmd)
	if err != nil {
		return err
	}

	if flat {
		return output.Print(model.Flatten(tree))
	}
	return output.Print(tree)
}
