// Package ui renders job cards whose label rows refit as the terminal resizes.
package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/jobs"
	"github.com/oakwood-commons/tagline/internal/measure"
	"github.com/oakwood-commons/tagline/internal/resize"
	"github.com/oakwood-commons/tagline/internal/tagrow"
	"github.com/oakwood-commons/tagline/pkg/logger"
)

// DefaultWidth is used until the terminal reports its size.
const DefaultWidth = 80

// Options configures a Model.
type Options struct {
	Jobs   []jobs.Job
	Detail bool // use detail tags instead of card tags
	Title  string

	Variant    badge.Variant
	Fallback   string
	Theme      Theme
	NoColor    bool
	Class      *lipgloss.Style
	Provider   func(build func(badge.Variant) badge.Styles) measure.Provider
	Gap        int
	MinVisible int

	// Width forces the layout width and ignores terminal resizes when set.
	Width  int
	Keys   *KeyMap
	Logger logr.Logger
}

// ReloadMsg replaces the job list, typically after the jobs file changed.
type ReloadMsg struct {
	Jobs []jobs.Job
	Err  error
}

type card struct {
	job jobs.Job
	row *tagrow.Row
}

// Model is the Bubble Tea model for the card list.
type Model struct {
	opts    Options
	keys    KeyMap
	styles  styles
	cards   []card
	cursor  int
	variant badge.Variant

	width  int
	height int

	sched  *resize.Scheduler
	input  textinput.Model
	adding bool
	status string
	log    logr.Logger
}

// NewModel builds the cards and computes the initial layout.
func NewModel(ctx context.Context, opts Options) *Model {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if opts.Variant == "" {
		opts.Variant = badge.DefaultVariant
	}
	ti := textinput.New()
	ti.Prompt = "label> "
	ti.Placeholder = "new label"
	ti.CharLimit = 64
	ti.SetWidth(40)

	m := &Model{
		opts:    opts,
		keys:    keys,
		styles:  newStyles(opts.Theme, opts.NoColor),
		variant: opts.Variant,
		width:   opts.Width,
		input:   ti,
		log:     opts.Logger,
	}
	if m.width <= 0 {
		m.width = DefaultWidth
	}
	m.cards = m.buildCards(opts.Jobs)
	// The card list is redrawn on every WindowSizeMsg, so the scheduler is
	// fed by Update rather than by its own subscription.
	m.sched = resize.New(resize.Pushed{}, m.resizeRows, m.log)
	m.sched.Start(ctx, m.innerWidth())
	return m
}

func (m *Model) buildCards(list []jobs.Job) []card {
	cards := make([]card, 0, len(list))
	for _, j := range list {
		tags := j.CardTags()
		if m.opts.Detail {
			tags = j.DetailTags()
		}
		ro := tagrow.Options{
			Labels:     tags,
			Fallback:   m.opts.Fallback,
			Variant:    m.variant,
			Palette:    m.opts.Theme.Palette,
			NoColor:    m.opts.NoColor,
			Class:      m.opts.Class,
			Gap:        m.opts.Gap,
			MinVisible: m.opts.MinVisible,
			Logger:     logger.ForRow(m.log, j.ID),
		}
		if m.opts.Provider != nil {
			ro.Provider = m.opts.Provider(m.badgeStyles)
		}
		row := tagrow.New(ro)
		cards = append(cards, card{job: j, row: row})
	}
	return cards
}

func (m *Model) badgeStyles(v badge.Variant) badge.Styles {
	return badge.NewStyles(m.opts.Theme.Palette, v, m.opts.NoColor)
}

func (m *Model) innerWidth() int {
	w := m.width - cardFrame
	if w < 0 {
		return 0
	}
	return w
}

func (m *Model) resizeRows(width int) {
	for _, c := range m.cards {
		c.row.Resize(width)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.opts.Width > 0 || msg.Width == m.width {
			return m, nil
		}
		m.width = msg.Width
		m.sched.Notify(m.innerWidth())
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("reload failed: %v", msg.Err)
			return m, nil
		}
		m.cards = m.buildCards(msg.Jobs)
		m.resizeRows(m.innerWidth())
		if m.cursor >= len(m.cards) {
			m.cursor = max(0, len(m.cards)-1)
		}
		m.status = fmt.Sprintf("reloaded %d jobs", len(m.cards))
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Size):
		m.variant = m.variant.Toggle()
		for _, c := range m.cards {
			c.row.SetVariant(m.variant)
		}
		m.status = "size " + m.variant.String()
	case key.Matches(msg, m.keys.Drop):
		if c, ok := m.current(); ok {
			c.row.DropLast()
		}
	case key.Matches(msg, m.keys.Add):
		if _, ok := m.current(); ok {
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if c, ok := m.current(); ok {
			if label := strings.TrimSpace(m.input.Value()); label != "" {
				c.row.AddLabel(label)
			}
		}
		m.adding = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) current() (card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return card{}, false
	}
	return m.cards[m.cursor], true
}

// Stop releases the resize observation.
func (m *Model) Stop() {
	m.sched.Stop()
}

// Render returns the card list as a string.
func (m *Model) Render() string {
	inner := m.innerWidth()
	var b strings.Builder
	if m.opts.Title != "" {
		b.WriteString(m.styles.title.Render(m.opts.Title))
		b.WriteString("\n")
	}
	if len(m.cards) == 0 {
		b.WriteString(m.styles.muted.Render("no jobs"))
		b.WriteString("\n")
	}
	for i, c := range m.cards {
		st := m.styles.card
		if i == m.cursor {
			st = m.styles.selected
		}
		body := []string{m.styles.title.Render(c.job.Title)}
		if meta := jobMeta(c.job); meta != "" {
			body = append(body, m.styles.muted.Render(meta))
		}
		body = append(body, c.row.View())
		b.WriteString(st.Render(padLines(body, inner)))
		b.WriteString("\n")
	}
	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	footer := helpLine(m.keys)
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	b.WriteString(m.styles.status.Render(footer))
	return b.String()
}

// padLines right-pads every line to width cells so cards share one width.
func padLines(lines []string, width int) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if gap := width - lipgloss.Width(l); gap > 0 {
			l += strings.Repeat(" ", gap)
		}
		out[i] = l
	}
	return strings.Join(out, "\n")
}

func jobMeta(j jobs.Job) string {
	parts := make([]string, 0, 2)
	if j.Company != "" {
		parts = append(parts, j.Company)
	}
	if j.Location != "" {
		parts = append(parts, j.Location)
	}
	return strings.Join(parts, " · ")
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Rows exposes the label rows in card order.
func (m *Model) Rows() []*tagrow.Row {
	out := make([]*tagrow.Row, len(m.cards))
	for i, c := range m.cards {
		out[i] = c.row
	}
	return out
}

// Cursor returns the selected card index.
func (m *Model) Cursor() int { return m.cursor }

// Scheduler returns the resize scheduler driving the rows.
func (m *Model) Scheduler() *resize.Scheduler { return m.sched }
