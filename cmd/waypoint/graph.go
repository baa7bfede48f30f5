package main

import (
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tour as a Mermaid diagram",
	Long:  `Outputs a Mermaid diagram (graph TD) of the pages in --content, or of the activation decision with --decision.
With --page N the diagram marks where a user is in the tour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		decision, _ := cmd.Flags().GetBool("decision")
		page, _ := cmd.Flags().GetInt("page")
		return cli.Graph(cmd.Context(), optionsFrom(cmd), cli.GraphOptions{Decision: decision, Page: page}, cmd.OutOrStdout())
	},
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a starter content file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "waypoint.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		return cli.Init(path, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(initCmd)
	graphCmd.Flags().Bool("decision", false, "Diagram the activation decision instead of the tour")
	graphCmd.Flags().Int("page", -1, "Highlight this page as current and earlier pages as visited")
}
