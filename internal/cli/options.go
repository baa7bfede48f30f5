package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint/internal/logging"
)

// Options contains the configuration shared by every command.
type Options struct {
	// Version is the running application version (required for run/check/reset).
	Version string
	// ContentPath points to a YAML or JSON onboarding document.
	ContentPath string
	// Store selects the marker store; see OpenStore.
	Store string
	// StoreSecret is a base64 AES-256 key; when set, markers are sealed.
	StoreSecret string
	// Namespace prefixes every marker key in the store.
	Namespace string
	// Key overrides the marker key.
	Key     string
	AppName string
	// AssetsDir holds files referenced by asset icons.
	AssetsDir string

	ReduceMotion bool
	Headless     bool
	Plain        bool

	Debug     bool
	LogFormat string
}

// ErrNoVersion is returned when a command needs --version and it is missing.
var ErrNoVersion = errors.New("--version is required (or set WAYPOINT_VERSION)")

// resolveVersion falls back to WAYPOINT_VERSION.
func (o Options) resolveVersion() (string, error) {
	if o.Version != "" {
		return o.Version, nil
	}
	if v := os.Getenv("WAYPOINT_VERSION"); v != "" {
		return v, nil
	}
	return "", ErrNoVersion
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(opts Options) *slog.Logger {
	if !opts.Debug {
		return logging.NewNop()
	}
	return logging.New(slog.LevelDebug, logging.Format(opts.LogFormat))
}
