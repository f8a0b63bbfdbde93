package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"deckctl/internal/htmldeck"
)

var convertOut string

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (default: input with .html, \"-\" for stdout)")
}

var convertCmd = &cobra.Command{
	Use:   "convert <deck.md>",
	Short: "Convert a markdown deck to HTML",
	Long:  "Convert a markdown deck to HTML. Slides are separated by lines containing only ---; a <!-- build --> comment makes the next block reveal item by item.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		if !htmldeck.IsMarkdown(in) {
			return fmt.Errorf("%s: not a markdown file", in)
		}
		src, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		doc, err := htmldeck.FromMarkdown(src)
		if err != nil {
			return err
		}
		out := convertOut
		if out == "" {
			out = strings.TrimSuffix(in, filepath.Ext(in)) + ".html"
		}
		if out == "-" {
			return doc.Render(os.Stdout)
		}
		if err := os.WriteFile(out, []byte(doc.String()), 0o644); err != nil {
			return err
		}
		fmt.Printf("✓ wrote %s (%d slides)\n", out, len(doc.Slides()))
		return nil
	},
}
