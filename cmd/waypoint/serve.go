package main

import (
	"context"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP decision service",
	Long: `Serves onboarding decisions for remote clients over JSON:
GET /decision?client=ID, PUT and DELETE /markers/{client}, GET /content,
GET /events (SSE) and GET /metrics (Prometheus).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := cli.NewSignalContext(context.Background())
		defer stop()

		return cli.Serve(ctx, optionsFrom(cmd), addr, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
