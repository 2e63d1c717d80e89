package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/climetrics/scenreport/internal/errors"
	"github.com/climetrics/scenreport/internal/store"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis runs from the run history",
	RunE:  showHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 10,
		"Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.History.Path == "" {
		return errors.NewConfigurationError("no history path configured; set history.path or SCENREPORT_HISTORY", nil)
	}

	s, err := store.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer errors.SafeClose(s, "run history")

	runs, err := s.RecentRuns(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tID\tDATASET\tSCENARIOS\tEXCLUDED\tPAIRS\tDROPPED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.CreatedAt.Format(time.RFC3339), r.ID[:8], r.DatasetPath,
			r.Scenarios, r.Excluded, r.Pairs, r.Dropped)
	}
	return w.Flush()
}
