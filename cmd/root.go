package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/output"
	"github.com/widgetlab/widget-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "widget-cli",
	Short: "Resolve cascaded selectors against live widget trees",
	Long: `A CLI tool that resolves cascaded selectors against snapshots of live
desktop widget trees. Selectors chain segments with '>>' (descendant) or '>'
(direct child); each segment picks a matching engine via its prefix: css
(default), class=, name=, text=, index=, xpath=, id=, plus cell/row/column/
node/tab/menu container segments for composite widgets.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("snapshot", "", "Path to a widget tree snapshot file (agent JSON dump)")
	rootCmd.PersistentFlags().String("root", "", "Scope to the subtree below this widget UID or name")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Max depth to search below each context (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("ignore-case", false, "Match text segments case-insensitively")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
