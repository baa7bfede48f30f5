package tui

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// RunOptions configures Run.
type RunOptions struct {
	Options
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run presents p as a full-screen program until it completes or the user
// quits. Quitting, or ctx ending, dismisses the presentation without writing
// the marker and is not reported as an error.
func Run(ctx context.Context, p *waypoint.Presentation, opts RunOptions) error {
	if p == nil {
		return nil
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, runErr := tea.NewProgram(NewModel(p, opts.Options), progOpts...).Run()

	// Completes a finished flow still in its exit animation; closes any other.
	p.Dismiss()
	if m, ok := final.(Model); ok && m.Err() != nil && !errors.Is(m.Err(), domain.ErrDismissed) {
		return m.Err()
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	err := p.Err()
	if errors.Is(err, domain.ErrDismissed) {
		return nil
	}
	return err
}
