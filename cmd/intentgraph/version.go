package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/intentgraph"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of intentgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("intentgraph version %s\n", strings.TrimSpace(intentgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
