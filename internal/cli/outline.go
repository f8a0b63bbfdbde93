package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"deckctl/internal/htmldeck"
)

var (
	outlineJSON  bool
	outlineWidth int
)

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "output JSON")
	outlineCmd.Flags().IntVar(&outlineWidth, "width", 60, "truncate labels to this many columns")
}

var outlineCmd = &cobra.Command{
	Use:   "outline <deck>",
	Short: "List slides with their labels, builds and frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := htmldeck.Load(args[0])
		if err != nil {
			return err
		}
		entries := htmldeck.Outline(doc)
		if outlineJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		fmt.Print(formatOutline(entries, outlineWidth))
		return nil
	},
}

// formatOutline renders one line per slide: "#n  label  [builds] [frames]".
// Labels are padded by display width so wide runes stay aligned.
func formatOutline(entries []htmldeck.OutlineEntry, width int) string {
	if width < 8 {
		width = 8
	}
	var b strings.Builder
	for _, e := range entries {
		label := runewidth.Truncate(e.Label, width, "…")
		label = runewidth.FillRight(label, width)
		var extra []string
		if e.Builds > 0 {
			extra = append(extra, fmt.Sprintf("%d builds", e.Builds))
		}
		if n := len(e.Frames); n > 0 {
			extra = append(extra, fmt.Sprintf("%d frames", n))
		}
		line := fmt.Sprintf("#%-3d %s", e.Number, label)
		if len(extra) > 0 {
			line += "  " + strings.Join(extra, ", ")
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}
