package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <corpus-file>",
	Short: "Check the corpus for structural problems",
	Long: `Runs the validation pass only: duplicate ids, malformed records, empty
answer blocks, broken redirects and redirect cycles. Exits non-zero when
critical or high severity findings exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := newEngine().AnalyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		val := rep.Validation
		for _, issue := range val.Issues {
			fmt.Printf("[%s] %s: %s (%s)\n", issue.Severity, issue.IntentID, issue.Detail, issue.Type)
		}
		for _, cycle := range val.Cycles {
			fmt.Printf("[cycle] %v\n", cycle)
		}

		fmt.Printf("\n%d errors, %d warnings across %d intents\n",
			val.Errors, val.Warnings, rep.TotalIntents)

		if val.Errors > 0 {
			os.Exit(1)
		}
		fmt.Println("Corpus is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
