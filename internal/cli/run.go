package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/domain"
	"golang.org/x/term"
)

// IO bundles the streams a command talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// isTerminal reports whether both ends are interactive terminals.
func (s IO) isTerminal() bool {
	in, ok := s.In.(*os.File)
	if !ok {
		return false
	}
	out, ok := s.Out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}

// Run activates the host and presents whatever flow is due.
func Run(ctx context.Context, opts Options, streams IO) error {
	logger := createLogger(opts)

	store, closer, err := openMarkerStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = createDebugHooks(logger)
	}
	host, err := createHost(opts, store, logger, hooks)
	if err != nil {
		return err
	}

	p, err := host.Activate(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		if !opts.Headless {
			printSystemMessage(streams.Out, "Nothing new in %s %s.", host.AppName(), host.Version())
		}
		return nil
	}

	interactive := !opts.Headless && !opts.Plain && streams.isTerminal()
	if interactive {
		err = runTUI(ctx, p, opts, streams)
	} else {
		err = runPlain(ctx, p, opts, streams)
	}
	if err = handleExecutionError(err); err != nil {
		return err
	}

	switch perr := p.Err(); {
	case perr == nil:
		if !opts.Headless {
			printSystemMessage(streams.Out, "Marked %s as seen.", host.Version())
		}
	case errors.Is(perr, domain.ErrDismissed):
		if !opts.Headless {
			printSystemMessage(streams.Out, "Closed early; it will show again next time.")
		}
	default:
		return perr
	}
	return nil
}

func runTUI(ctx context.Context, p *waypoint.Presentation, opts Options, streams IO) error {
	width := 80
	if f, ok := streams.Out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	if p.Kind == domain.FlowFirstLaunch {
		tui.PrintBanner(streams.Out, "Welcome to "+p.AppName, p.Accent)
	}

	runOpts := tui.RunOptions{
		Options: tui.Options{Renderer: tui.NewRenderer(width - 12)},
		Input:   streams.In,
		Output:  streams.Out,
	}
	if opts.AssetsDir != "" {
		runOpts.Assets = os.DirFS(opts.AssetsDir)
	}
	return tui.Run(ctx, p, runOpts)
}

func runPlain(ctx context.Context, p *waypoint.Presentation, opts Options, streams IO) error {
	r := waypoint.NewRunner()
	r.Output = streams.Out
	r.Headless = opts.Headless
	if streams.In != nil && !opts.Headless {
		r.Input = NewInterruptibleReader(streams.In, ctx.Done())
	}
	if !opts.Headless && !opts.Plain {
		r.Renderer = waypoint.ContentRenderer(tui.NewRenderer(72))
	}
	if err := r.Run(ctx, p); err != nil {
		return fmt.Errorf("presentation failed: %w", err)
	}
	return nil
}
