package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/motion"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultFPS  = 60
	restMargin  = 4
	minWidth    = 40
	wrapPadding = 8
	riseLine    = 6 // Rise units per blank line above the sheet button.
)

// Options configures the Model.
type Options struct {
	Renderer ContentRenderer
	Assets   fs.FS
	Keys     *KeyMap
	FPS      int
}

type (
	frameMsg    struct{ gen int }
	pulseMsg    struct{ gen int }
	buttonMsg   struct{}
	revealMsg   struct{ key string }
	completeMsg struct{}
)

// Model is a Bubble Tea model presenting one waypoint.Presentation.
type Model struct {
	p      *waypoint.Presentation
	keys   KeyMap
	help   help.Model
	styles Styles
	render ContentRenderer
	assets fs.FS
	fps    int

	width  int
	height int

	entrance *motion.EntranceTracker
	revealed map[string]bool

	offset float64
	frames []float64
	gen    int

	pulse    []float64
	pulseGen int

	buttonRise   float64
	buttonFrames []float64

	exiting bool
	done    bool
	err     error
}

// NewModel creates a model for p.
func NewModel(p *waypoint.Presentation, opts Options) Model {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	render := opts.Renderer
	if render == nil {
		render = PlainRenderer
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	seq := p.Sequencer
	if seq == nil {
		seq = motion.Default()
	}

	return Model{
		p:        p,
		keys:     keys,
		help:     help.New(),
		styles:   NewStyles(p.Accent),
		render:   render,
		assets:   opts.Assets,
		fps:      fps,
		width:    80,
		entrance: seq.Entrance(p.ReduceMotion),
		revealed: make(map[string]bool),
	}
}

// Err returns the completion error once the program ended.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.enterCmds()...)
}

// entrance is one element whose reveal was just started.
type entrance struct {
	key   string
	delay time.Duration
}

// enterCmds starts the entrance of the elements currently on screen. Elements
// with no delay are revealed synchronously.
func (m Model) enterCmds() []tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.startEntrances() {
		if e.delay == 0 {
			m.revealed[e.key] = true
			continue
		}
		name := e.key
		cmds = append(cmds, tea.Tick(e.delay, func(time.Time) tea.Msg { return revealMsg{key: name} }))
	}
	return cmds
}

// startEntrances arms the elements on screen that have not played yet.
// Sheet rows follow the sheet's own row delays; the header shows at once and
// the continue button waits for its configured delay.
func (m Model) startEntrances() []entrance {
	var started []entrance
	add := func(key string, delay time.Duration, ok bool) {
		if ok {
			started = append(started, entrance{key: key, delay: delay})
		}
	}

	if s := m.p.Sheet; s != nil {
		d, ok := m.entrance.StartAfter("header", 0)
		add("header", d, ok)
		for i := range s.Features() {
			name := "row:" + strconv.Itoa(i)
			d, ok := m.entrance.StartAfter(name, s.RowDelay(i))
			add(name, d, ok)
		}
		d, ok = m.entrance.StartAfter("button", s.ButtonDelay())
		add("button", d, ok)
		return started
	}

	if f := m.p.Flow; f != nil {
		prefix := "page:" + strconv.Itoa(f.Index()) + ":"
		for i, suffix := range []string{"icon", "text", "button"} {
			d, ok := m.entrance.Start(prefix+suffix, i)
			add(prefix+suffix, d, ok)
		}
	}
	return started
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case revealMsg:
		m.revealed[msg.key] = true
		if msg.key == "button" && m.p.Sheet != nil {
			spec := m.p.Sheet.ButtonTransition()
			m.buttonFrames = spec.Frames(spec.Offset, 0, m.fps)
			m.buttonRise, m.buttonFrames = m.buttonFrames[0], m.buttonFrames[1:]
			if len(m.buttonFrames) > 0 {
				return m, m.tick(buttonMsg{})
			}
		}
		return m, nil

	case buttonMsg:
		if len(m.buttonFrames) == 0 {
			return m, nil
		}
		m.buttonRise, m.buttonFrames = m.buttonFrames[0], m.buttonFrames[1:]
		if len(m.buttonFrames) == 0 {
			return m, nil
		}
		return m, m.tick(buttonMsg{})

	case frameMsg:
		if msg.gen != m.gen || len(m.frames) == 0 {
			return m, nil
		}
		m.offset, m.frames = m.frames[0], m.frames[1:]
		if len(m.frames) == 0 {
			return m, nil
		}
		return m, m.tick(frameMsg{gen: m.gen})

	case pulseMsg:
		if msg.gen != m.pulseGen || len(m.pulse) == 0 {
			return m, nil
		}
		m.pulse = m.pulse[1:]
		if len(m.pulse) == 0 {
			return m, nil
		}
		return m, m.tick(pulseMsg{gen: m.pulseGen})

	case completeMsg:
		m.done = true
		m.err = m.p.Err()
		return m, tea.Quit

	case tea.KeyMsg:
		if m.exiting {
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.p.Dismiss()
			m.done = true
			m.err = m.p.Err()
			return m, tea.Quit
		}
		if m.p.Sheet != nil {
			return m.updateSheet(msg)
		}
		if m.p.Flow != nil {
			return m.updateFlow(msg)
		}
	}
	return m, nil
}

func (m Model) updateFlow(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.p.Flow
	from := f.Index()

	var err error
	switch {
	case key.Matches(msg, m.keys.Next):
		err = f.PrimaryAction()
	case key.Matches(msg, m.keys.Back):
		err = f.Back()
	case key.Matches(msg, m.keys.Skip):
		err = f.Skip()
	default:
		return m, nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTarget), errors.Is(err, domain.ErrSkipUnavailable):
		return m, nil
	case err != nil:
		m.err = err
		return m, tea.Quit
	}

	if f.Finished() {
		return m.exit()
	}
	if f.Index() == from {
		return m, nil
	}

	// Re-arm the page being left so coming back replays its entrance.
	prefix := "page:" + strconv.Itoa(from) + ":"
	for _, suffix := range []string{"icon", "text", "button"} {
		m.entrance.Forget(prefix + suffix)
		delete(m.revealed, prefix+suffix)
	}

	spec := f.Transition()
	cmds := m.enterCmds()

	m.gen++
	m.frames = spec.Frames(spec.Offset, 0, m.fps)
	m.offset, m.frames = m.frames[0], m.frames[1:]
	if len(m.frames) > 0 {
		cmds = append(cmds, m.tick(frameMsg{gen: m.gen}))
	}

	micro := m.p.Sequencer
	if micro != nil {
		mspec := micro.Plan(motion.Micro, f.Direction(), f.ReduceMotion())
		m.pulseGen++
		m.pulse = mspec.Frames(mspec.Offset, 0, m.fps)
		if len(m.pulse) > 1 {
			cmds = append(cmds, m.tick(pulseMsg{gen: m.pulseGen}))
		} else {
			m.pulse = nil
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Next) || !m.revealed["button"] {
		return m, nil
	}
	if err := m.p.Sheet.Continue(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m.exit()
}

// exit waits for the presentation to complete after the exit animation.
func (m Model) exit() (tea.Model, tea.Cmd) {
	m.exiting = true
	done := m.p.Done()
	return m, func() tea.Msg {
		<-done
		return completeMsg{}
	}
}

func (m Model) tick(msg tea.Msg) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(time.Time) tea.Msg { return msg })
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var body string
	switch {
	case m.p.Sheet != nil:
		body = m.viewSheet()
	case m.p.Flow != nil:
		body = m.viewFlow()
	}
	if m.exiting {
		body = m.styles.Faint.Render(body)
	}
	if m.err != nil {
		body += "\n" + m.styles.Error.Render(m.err.Error())
	}
	return body
}

func (m Model) contentWidth() int {
	return max(m.width-wrapPadding, minWidth)
}

func (m Model) viewFlow() string {
	f := m.p.Flow
	page, err := f.CurrentPage()
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}
	prefix := "page:" + strconv.Itoa(f.Index()) + ":"

	var b strings.Builder
	if m.revealed[prefix+"icon"] {
		b.WriteString(m.styles.icon(page.IconColor).Render(Art(m.assets, page.Icon)))
	}
	b.WriteString("\n\n")
	if m.revealed[prefix+"text"] {
		b.WriteString(m.styles.Title.Render(page.Title))
		b.WriteString("\n")
		if page.Description != "" {
			b.WriteString(m.styles.Description.Width(m.contentWidth()).Render(m.markdown(page.Description)))
		}
	}
	b.WriteString("\n\n")

	card := m.styles.card(page.Background).
		MarginLeft(max(0, int(math.Round(restMargin+m.offset)))).
		Render(b.String())

	var footer strings.Builder
	footer.WriteString(m.indicator(f.Index(), f.Len()))
	footer.WriteString("\n\n")
	if m.revealed[prefix+"button"] {
		footer.WriteString(m.styles.Button.Render(f.ButtonLabel()))
		if f.CanSkip() {
			footer.WriteString("  ")
			footer.WriteString(m.styles.Faint.Render("s: skip"))
		}
	}
	footer.WriteString("\n\n")
	footer.WriteString(m.help.View(m.flowKeys()))

	return lipgloss.JoinVertical(lipgloss.Left,
		card,
		lipgloss.NewStyle().MarginLeft(restMargin).Render(footer.String()),
	)
}

// flowKeys hides bindings that do nothing on the current page.
func (m Model) flowKeys() KeyMap {
	k := m.keys
	k.Next.SetHelp(k.Next.Help().Key, strings.ToLower(m.p.Flow.ButtonLabel()))
	k.Back.SetEnabled(m.p.Flow.Index() > 0)
	k.Skip.SetEnabled(m.p.Flow.CanSkip())
	return k
}

func (m Model) indicator(current, total int) string {
	dots := make([]string, total)
	for i := range dots {
		switch {
		case i != current:
			dots[i] = m.styles.Dot.Render("○")
		case len(m.pulse) > 0:
			dots[i] = m.styles.DotActive.Bold(true).Render("◉")
		default:
			dots[i] = m.styles.DotActive.Render("●")
		}
	}
	return strings.Join(dots, " ")
}

func (m Model) viewSheet() string {
	s := m.p.Sheet

	var b strings.Builder
	if m.revealed["header"] {
		b.WriteString(m.styles.Header.Render(m.p.Header()))
	}
	b.WriteString("\n")

	for i, row := range s.Features() {
		if !m.revealed["row:"+strconv.Itoa(i)] {
			continue
		}
		icon := m.styles.icon(row.IconColor).Render(Glyph(row.Icon))
		text := m.styles.Title.Render(row.Title)
		if row.Description != "" {
			text += "\n" + m.styles.Description.Width(m.contentWidth()-4).Render(m.markdown(row.Description))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, icon, "  ", text)
		b.WriteString(m.styles.card(row.Background).Padding(0, 1).Render(line))
		b.WriteString("\n\n")
	}

	if m.revealed["button"] {
		b.WriteString(strings.Repeat("\n", max(0, int(math.Round(m.buttonRise/riseLine)))))
		b.WriteString(m.styles.Button.Render(s.ButtonLabel()))
		b.WriteString("\n\n")
		k := m.keys
		k.Back.SetEnabled(false)
		k.Skip.SetEnabled(false)
		k.Next.SetHelp(k.Next.Help().Key, "continue")
		b.WriteString(m.help.View(k))
	}

	return lipgloss.NewStyle().Margin(1, restMargin).Render(b.String())
}

func (m Model) markdown(s string) string {
	out, err := m.render(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}

// String describes the model state; used in logs.
func (m Model) String() string {
	switch {
	case m.p.Flow != nil:
		return fmt.Sprintf("flow page %d/%d", m.p.Flow.Index()+1, m.p.Flow.Len())
	case m.p.Sheet != nil:
		return fmt.Sprintf("sheet with %d features", len(m.p.Sheet.Features()))
	}
	return "empty"
}
