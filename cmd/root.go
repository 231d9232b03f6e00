package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdeck/internal/app"
	"github.com/abhisek/examdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examdeck",
	Short: "Terminal exam runner",
	Long:  "Examdeck — a terminal runner for four-option multiple choice exams, with practice and exam modes, a session clock, and review export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides EXAMDECK_DB env var)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp opens the history store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Runs: st.Runs(),
	})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
