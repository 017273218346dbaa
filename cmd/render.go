package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/overlay"
)

var renderCmd = &cobra.Command{
	Use:   "render SELECTOR",
	Short: "Draw matched widgets onto a screenshot",
	Long: `Resolve a selector and draw labeled bounding boxes for every match onto a
screenshot of the inspected window. Useful for eyeballing what a selector
actually hits.

Example:
  widget-cli render --snapshot app.json --image window.png --out marked.png "Button:enabled"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("image", "", "Screenshot of the inspected window (PNG)")
	renderCmd.Flags().String("out", "", "Output file for the annotated image (PNG)")
	renderCmd.MarkFlagRequired("image")
	renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	outPath, _ := cmd.Flags().GetString("out")

	tree, err := loadTree(cmd)
	if err != nil {
		return err
	}

	matches, err := newResolver(cmd).FindAll(tree, args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	annotated := overlay.Annotate(img, matches, tree.Bounds)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, annotated); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "annotated %d matches -> %s\n", len(matches), outPath)
	return nil
}
