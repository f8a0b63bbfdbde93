package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckctl/internal/htmldeck"
)

var (
	checkJSON bool
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output JSON report")
}

var checkCmd = &cobra.Command{
	Use:   "check <deck>...",
	Short: "Check deck structure: slides, headings, builds and frames",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := make([]htmldeck.Report, 0, len(args))
		errs, warns := 0, 0
		for _, p := range args {
			doc, err := htmldeck.Load(p)
			if err != nil {
				reports = append(reports, htmldeck.Report{Path: p, Errors: []string{err.Error()}})
				errs++
				continue
			}
			rep := htmldeck.Check(doc)
			errs += len(rep.Errors)
			warns += len(rep.Warnings)
			reports = append(reports, rep)
		}

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}
		} else {
			for _, r := range reports {
				builds, frames := 0, 0
				for _, s := range r.Slides {
					builds += s.Builds
					frames += len(s.Frames)
				}
				status := "ok"
				if len(r.Errors) > 0 {
					status = "error"
				} else if len(r.Warnings) > 0 {
					status = "warn"
				}
				fmt.Printf("[%s] %s: %d slides, %d builds, %d frames\n", status, r.Path, len(r.Slides), builds, frames)
				for _, e := range r.Errors {
					fmt.Printf("  - error: %s\n", e)
				}
				for _, w := range r.Warnings {
					fmt.Printf("  - warn: %s\n", w)
				}
			}
			fmt.Printf("\nSummary: %d files, %d errors, %d warnings\n", len(reports), errs, warns)
		}
		if errs > 0 {
			return fmt.Errorf("check failed: %d error(s)", errs)
		}
		return nil
	},
}
