package main

import (
	"context"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Present the onboarding flow that is due, if any",
	Long: `Reads the version marker, presents the first-launch tour or the What's New
sheet as needed and marks the version as seen once the user completes it.
Uses a full-screen terminal UI when attached to a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		opts.AppName, _ = cmd.Flags().GetString("app-name")
		opts.AssetsDir, _ = cmd.Flags().GetString("assets")
		opts.ReduceMotion, _ = cmd.Flags().GetBool("reduce-motion")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Plain, _ = cmd.Flags().GetBool("plain")

		ctx, stop := cli.NewSignalContext(context.Background())
		defer stop()

		return cli.Run(ctx, opts, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("app-name", "", "Name shown in headers (default: from content, else executable name)")
	runCmd.Flags().String("assets", "", "Directory holding files referenced by asset icons")
	runCmd.Flags().Bool("reduce-motion", false, "Disable animations (also $WAYPOINT_REDUCE_MOTION)")
	runCmd.Flags().Bool("headless", false, "Complete the flow without input (CI, scripts)")
	runCmd.Flags().Bool("plain", false, "Line-based prompts instead of the terminal UI")
}
