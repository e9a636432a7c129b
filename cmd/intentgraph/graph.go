package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/intentgraph/internal/export"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <corpus-file>",
	Short: "Export the intent graph as a diagram",
	Long: `Builds the graph and renders it in one of the supported formats:
mermaid, dot, graphml, gexf, cytoscape, d3 or visjs. With --all, writes
every format into the export directory instead of printing to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		all, _ := cmd.Flags().GetBool("all")

		res, err := newEngine().RunFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if all {
			paths, err := export.WriteAll(res.Export, cfg.Export.Dir, cfg.Export.BaseName)
			if err != nil {
				return err
			}
			for _, f := range export.Formats() {
				fmt.Printf("%-10s %s\n", f, paths[f])
			}
			return nil
		}

		data, err := export.Render(res.Export, export.Format(format))
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", "mermaid", "Diagram format to print")
	graphCmd.Flags().Bool("all", false, "Write all formats to the export directory")
}
