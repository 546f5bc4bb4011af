package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"compactor/internal/store"
)

var (
	historyLimit int
	historyRun   string
)

// historyCmd lists recent craft runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent craft runs",
	Long: `Lists recent craft runs recorded in the history database, newest
first. Pass --run with a run ID to see the tasks that run submitted.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Runs to show")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "Show the tasks of one run by ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := store.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer h.Close()

	return showHistory(h, historyLimit, historyRun, os.Stdout)
}

// showHistory writes run summaries, or the per-task detail of one run when
// runID is set.
func showHistory(h *store.History, limit int, runID string, w io.Writer) error {
	if runID != "" {
		tasks, err := h.Tasks(runID)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Fprintf(w, "No tasks recorded for run %s.\n", runID)
			return nil
		}
		for _, t := range tasks {
			fmt.Fprintf(w, "  %4dx %-32s (+%d slots)\n", t.Quantity, t.Info.Label, t.SlotsSaved)
		}
		return nil
	}

	runs, err := h.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %2d task(s)  %4d slots\n",
			r.StartedAt.Format(time.DateTime), r.ID, r.TaskCount, r.SlotsSaved)
	}
	return nil
}
