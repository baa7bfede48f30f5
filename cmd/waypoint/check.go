package main

import (
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print which flow the next run would present",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cli.Check(cmd.Context(), optionsFrom(cmd), cmd.OutOrStdout())
		return err
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the version marker so the first-launch tour shows again",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Reset(cmd.Context(), optionsFrom(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resetCmd)
}
