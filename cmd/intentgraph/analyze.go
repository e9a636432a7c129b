package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aretw0/intentgraph/internal/tui"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <corpus-file>",
	Short: "Run the full analysis pipeline over a corpus",
	Long: `Loads the corpus, extracts transitions, builds the graph and runs the
validation, risk and quality passes. Prints a rendered summary to the
terminal; use --json to persist the full report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath, _ := cmd.Flags().GetString("json")
		rawMarkdown, _ := cmd.Flags().GetBool("markdown")

		rep, err := newEngine().AnalyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonPath != "" {
			if err := rep.WriteJSON(jsonPath); err != nil {
				return err
			}
			logger.Info("report written", "path", jsonPath, "run_id", rep.RunID)
		}

		if rawMarkdown || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(rep.Markdown())
			return nil
		}

		tui.PrintBanner()
		out, err := rep.RenderTerminal()
		if err != nil {
			fmt.Print(rep.Markdown())
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("json", "", "Write the full report as JSON to this path")
	analyzeCmd.Flags().Bool("markdown", false, "Print plain markdown instead of the rendered summary")
}
