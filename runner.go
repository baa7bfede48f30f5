package waypoint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Runner presents a flow over line-based IO. It is the fallback presenter
// when no terminal UI is available (pipes, CI, dumb terminals).
//
// Commands on the prompt: empty line or "n" presses the primary button, "b"
// goes back, "s" skips and "q" quits without marking the version as seen.
type Runner struct {
	Input  io.Reader
	Output io.Writer
	// Headless presses the primary button on every page without reading input.
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms descriptions before output, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run drives p until it completes or the user quits. Quitting is not an
// error; completion errors (such as a failed marker write) are returned.
func (r *Runner) Run(ctx context.Context, p *Presentation) error {
	if p == nil {
		return nil
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.Input == nil && !r.Headless {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}

	var lines *bufio.Reader
	if r.Input != nil {
		lines = bufio.NewReader(r.Input)
	}

	var err error
	switch {
	case p.Flow != nil:
		err = r.runFlow(ctx, p, lines)
	case p.Sheet != nil:
		err = r.runSheet(ctx, p, lines)
	}
	if err != nil {
		return err
	}

	err = p.Wait(ctx)
	if errors.Is(err, domain.ErrDismissed) {
		return nil
	}
	return err
}

func (r *Runner) runFlow(ctx context.Context, p *Presentation, lines *bufio.Reader) error {
	f := p.Flow
	lastShown := -1

	for !f.Finished() {
		if err := ctx.Err(); err != nil {
			p.Dismiss()
			return err
		}

		if f.Index() != lastShown {
			page, err := f.CurrentPage()
			if err != nil {
				return err
			}
			r.printPage(page, f.Index(), f.Len())
			lastShown = f.Index()
		}

		if r.Headless {
			if err := f.PrimaryAction(); err != nil {
				return fmt.Errorf("navigation error: %w", err)
			}
			continue
		}

		hint := "[enter] " + f.ButtonLabel()
		if f.Index() > 0 {
			hint += "  [b] Back"
		}
		if f.CanSkip() {
			hint += "  [s] Skip"
		}
		fmt.Fprintf(r.Output, "%s  [q] Quit\n> ", hint)

		input, ok, err := readCommand(lines)
		if err != nil {
			return err
		}
		if !ok {
			p.Dismiss()
			return nil
		}

		switch input {
		case "", "n", "next":
			err = f.PrimaryAction()
		case "b", "back":
			err = f.Back()
		case "s", "skip":
			err = f.Skip()
		case "q", "quit", "exit":
			fmt.Fprintln(r.Output, "Bye!")
			p.Dismiss()
			return nil
		default:
			fmt.Fprintf(r.Output, "unknown command %q\n", input)
			continue
		}

		if errors.Is(err, domain.ErrSkipUnavailable) || errors.Is(err, domain.ErrInvalidTarget) {
			fmt.Fprintln(r.Output, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("navigation error: %w", err)
		}
	}
	return nil
}

func (r *Runner) runSheet(ctx context.Context, p *Presentation, lines *bufio.Reader) error {
	s := p.Sheet

	fmt.Fprintln(r.Output, p.Header())
	fmt.Fprintln(r.Output)
	for _, row := range s.Features() {
		fmt.Fprintf(r.Output, "%s %s\n", glyph(row.Icon), row.Title)
		if row.Description != "" {
			fmt.Fprintf(r.Output, "  %s\n", r.render(row.Description))
		}
	}
	fmt.Fprintln(r.Output)

	if !r.Headless {
		fmt.Fprintf(r.Output, "[enter] %s  [q] Quit\n> ", s.ButtonLabel())
		input, ok, err := readCommand(lines)
		if err != nil {
			return err
		}
		if !ok || input == "q" || input == "quit" || input == "exit" {
			p.Dismiss()
			return nil
		}
	}

	if err := ctx.Err(); err != nil {
		p.Dismiss()
		return err
	}
	return s.Continue()
}

func (r *Runner) printPage(page domain.Page, index, total int) {
	fmt.Fprintf(r.Output, "\n(%d/%d) %s %s\n", index+1, total, glyph(page.Icon), page.Title)
	if page.Description != "" {
		fmt.Fprintln(r.Output, r.render(page.Description))
	}
}

func (r *Runner) render(s string) string {
	if r.Renderer != nil {
		if out, err := r.Renderer(s); err == nil {
			s = out
		}
	}
	return strings.TrimSpace(s)
}

// readCommand reads one trimmed, lower-cased line. ok is false on EOF.
func readCommand(lines *bufio.Reader) (string, bool, error) {
	text, err := lines.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if strings.TrimSpace(text) == "" {
				return "", false, nil
			}
		} else {
			return "", false, fmt.Errorf("input error: %w", err)
		}
	}
	return strings.ToLower(strings.TrimSpace(text)), true, nil
}

func glyph(icon domain.Icon) string {
	if icon.IsZero() {
		return "*"
	}
	return "[" + icon.Name + "]"
}
