package main

import (
	"fmt"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Waypoint shows first-run tours and What's New sheets",
	Long: `Waypoint decides, from the last version a user was onboarded on, whether to
show a paged first-launch tour, a "What's New" sheet, or nothing, and records
the running version once the user completes it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("version", "", "Running application version (default $WAYPOINT_VERSION)")
	pf.StringP("content", "c", "", "Onboarding content file (.yaml or .json)")
	pf.String("store", "", "Marker store: memory:, file:DIR, sqlite:PATH or redis://URL (default: user config dir)")
	pf.String("key", "", "Marker key (default \"waypoint.last_seen_version\")")
	pf.String("namespace", "", "Prefix for every marker key in a shared store")
	pf.String("store-secret", "", "Base64 AES-256 key sealing stored markers (default $WAYPOINT_STORE_SECRET)")
	pf.Bool("debug", false, "Enable debug logging on stderr")
	pf.String("log-format", "text", "Debug log format: text or json")
}

// optionsFrom reads the persistent flags.
func optionsFrom(cmd *cobra.Command) cli.Options {
	f := cmd.Flags()
	version, _ := f.GetString("version")
	contentPath, _ := f.GetString("content")
	store, _ := f.GetString("store")
	key, _ := f.GetString("key")
	namespace, _ := f.GetString("namespace")
	secret, _ := f.GetString("store-secret")
	debug, _ := f.GetBool("debug")
	logFormat, _ := f.GetString("log-format")

	return cli.Options{
		Version:     version,
		ContentPath: contentPath,
		Store:       store,
		StoreSecret: secret,
		Namespace:   namespace,
		Key:         key,
		Debug:       debug,
		LogFormat:   logFormat,
	}
}
