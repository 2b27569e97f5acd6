package cmd

import (
	"fmt"
	"os"

	"github.com/mzahur/vidgrab/internal/history"
	"github.com/mzahur/vidgrab/internal/output"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history [--limit N] [--failed]",
		Short: "Show past downloads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if historyStore == nil {
				output.PrintError("History is not available")
				os.Exit(1)
			}
			statusFilter := ""
			if failedOnly {
				statusFilter = history.StatusFailed
			}
			records, err := historyStore.List(limit, statusFilter)
			if err != nil {
				output.PrintError("Error reading history: " + err.Error())
				os.Exit(1)
			}
			if len(records) == 0 {
				output.PrintInfo("No downloads recorded yet")
				return
			}
			output.PrintHeader("Download history")
			for _, record := range records {
				printRecord(record)
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed downloads")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if historyStore == nil {
				output.PrintError("History is not available")
				os.Exit(1)
			}
			if err := historyStore.Clear(); err != nil {
				output.PrintError("Error clearing history: " + err.Error())
				os.Exit(1)
			}
			output.PrintSuccess("History cleared")
		},
	})
	return cmd
}

func printRecord(record history.Record) {
	indicator := output.FSuccess(output.StyleSymbols["pass"])
	if record.Status == history.StatusFailed {
		indicator = output.FError(output.StyleSymbols["fail"])
	}
	title := record.Title
	if title == "" {
		title = record.URL
	}
	detail := record.FinishedAt.Format("2006-01-02 15:04")
	if record.FileSize > 0 {
		detail += fmt.Sprintf(" %s %s", output.StyleSymbols["bullet"], utils.FormatBytes(uint64(record.FileSize)))
	}
	if record.Duration != "" {
		detail += fmt.Sprintf(" %s %s", output.StyleSymbols["bullet"], record.Duration)
	}
	fmt.Printf("  %s %s [%s] %s\n", indicator, title, record.Format, output.FDebug(detail))
	if record.Status == history.StatusFailed && record.Error != "" {
		fmt.Printf("      %s\n", output.FError(record.Error))
	} else if record.OutputPath != "" {
		fmt.Printf("      %s\n", output.FDetail(record.OutputPath))
	}
}
