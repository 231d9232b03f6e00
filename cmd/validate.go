package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdeck/internal/bank"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bank>",
	Short: "Check a question bank for problems",
	Long:  "Parses a CSV bank (or quiz JSON with --json) and reports rows with missing text, empty options, or no recognizable answer key.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON && strings.EqualFold(filepath.Ext(path), ".json") {
			asJSON = true
		}

		var problems []string
		var count int
		if asJSON {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			qs, warnings, err := bank.ParseAnkiJSON(data)
			for _, w := range warnings {
				fmt.Println("warning:", w)
			}
			if err != nil {
				return err
			}
			count = len(qs)
			problems = bank.Lint(qs)
		} else {
			qs, err := bank.LoadFile(path)
			if err != nil {
				return err
			}
			count = len(qs)
			problems = bank.Lint(qs)
		}

		fmt.Printf("%s: %d questions\n", path, count)
		for _, p := range problems {
			fmt.Println("  ", p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems found", len(problems))
		}
		fmt.Println("OK")
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("json", false, "Treat the input as quiz JSON instead of CSV")
}
