package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exam runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.Runs()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := repo.Recent(ctx, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FINISHED\tMODE\tSCORE\tPCT\tFLAGGED\tTIME")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.0f%%\t%d\t%s\n",
				r.FinishedAt.Local().Format("2006-01-02 15:04"),
				r.Mode,
				r.Correct, r.Total,
				r.Percentage,
				r.Flagged,
				exam.FormatSeconds(r.DurationSecs),
			)
		}
		w.Flush()

		sum, err := repo.Summarize(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d runs, %d questions seen, average %.0f%%, best %.0f%%\n",
			sum.Runs, sum.QuestionsSeen, sum.AvgPercentage, sum.BestPercentage)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to show")
}
