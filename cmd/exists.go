package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/output"
)

var existsCmd = &cobra.Command{
	Use:   "exists SELECTOR",
	Short: "Check whether a selector matches at least one widget",
	Long: `Check whether a cascaded selector matches at least one widget in the
snapshot. Prints the result and exits with status 1 when nothing matches,
so scripts can branch on it directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runExists,
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

// existsResult is the top-level output of the exists command.
type existsResult struct {
	Selector string `yaml:"selector" json:"selector"`
	Exists   bool   `yaml:"exists"   json:"exists"`
}

func runExists(cmd *cobra.Command, args []string) error {
	tree, err := loadTree(cmd)
	if err != nil {
		return err
	}

	found, err := newResolver(cmd).Exists(tree, args[0])
	if err != nil {
		return err
	}

	if err := output.Print(existsResult{Selector: args[0], Exists: found}); err != nil {
		return err
	}
	if !found {
		os.Exit(1)
	}
	return nil
}
