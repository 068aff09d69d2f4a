package onboarding

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/mark3labs/onboardr/internal/flow"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	"github.com/mark3labs/onboardr/internal/tui/wizard"
)

// Model is the BubbleTea model presenting one onboarding step per screen.
type Model struct {
	flow      *flow.Flow
	content   *content.Content
	indicator *Indicator
	keys      keyMap

	cursor    int // Highlighted option on a selection step
	page      int // Index the cursor belongs to
	width     int
	height    int
	cancelled bool

	bodies    map[int]string // Rendered markdown per step
	bodyWidth int
}

// NewModel creates a model driving f with the text from c. c must describe
// the same steps f was built from.
func NewModel(f *flow.Flow, c *content.Content) *Model {
	m := &Model{
		flow:      f,
		content:   c,
		indicator: NewIndicator(f.StepCount()),
		keys:      defaultKeyMap(),
		page:      -1,
		width:     80,
		height:    24,
		bodies:    make(map[int]string),
	}
	m.indicator.OnIndex(f.CurrentIndex())
	f.Subscribe(flow.ObserverFunc(func(e flow.Event) {
		if e.Kind == flow.EventIndexChanged {
			m.indicator.OnIndex(e.Index)
		}
	}))
	m.syncCursor()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cancelled reports whether the user left before finishing.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		cmd := m.handleKey(msg)
		m.syncCursor()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches[tea.KeyPressMsg](msg, m.keys.Quit):
		m.cancelled = true
		return tea.Quit

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Continue):
		return m.next()

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Forward):
		// Swipe forward: refused silently while the gate is closed
		m.advance()
		return nil

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Back):
		if m.flow.CurrentIndex() == 0 {
			if msg.String() == "esc" {
				m.cancelled = true
				return tea.Quit
			}
			return nil
		}
		if _, err := m.flow.Retreat(); err != nil {
			logger.Debug("retreat: %v", err)
		}
		return nil

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Down):
		if sel := m.currentSelection(); sel != nil && m.cursor < sel.Len()-1 {
			m.cursor++
		}
		return nil

	case key.Matches[tea.KeyPressMsg](msg, m.keys.Select):
		m.choose(m.cursor)
		return nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		m.choose(int(s[0] - '1'))
	}
	return nil
}

// next runs the Continue button: finish on the completed last step,
// otherwise a gated advance.
func (m *Model) next() tea.Cmd {
	if m.flow.IsComplete() {
		if err := m.flow.Finish(); err != nil {
			logger.Warn("finish: %v", err)
			return nil
		}
		return tea.Quit
	}
	m.advance()
	return nil
}

func (m *Model) advance() {
	out, err := m.flow.Advance()
	if err != nil {
		logger.Debug("advance: %v", err)
		return
	}
	if out != flow.OutcomeMoved {
		logger.Debug("advance from step %d: %s", m.flow.CurrentIndex(), out)
	}
}

func (m *Model) choose(option int) {
	sel := m.currentSelection()
	if sel == nil || option < 0 || option >= sel.Len() {
		return
	}
	if err := m.flow.Select(option); err != nil {
		logger.Debug("select %d: %v", option, err)
		return
	}
	m.cursor = option
}

func (m *Model) currentSelection() flow.SelectionView {
	return m.flow.Selection(m.flow.CurrentIndex())
}

// syncCursor places the cursor on the chosen option when a page is entered.
func (m *Model) syncCursor() {
	idx := m.flow.CurrentIndex()
	if idx == m.page {
		return
	}
	m.page = idx
	m.cursor = 0
	if sel := m.currentSelection(); sel != nil {
		if chosen, ok := sel.Selected(); ok {
			m.cursor = chosen
		}
	}
}

// View renders the current step.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render builds the full screen as a string.
func (m *Model) render() string {
	snap := m.flow.Snapshot()
	step := m.content.Steps[snap.Index]
	s := theme.Current().S()
	width := wizard.ContentWidth(wizard.ModalWidth(m.width))

	var sections []string
	if step.Emoji != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, s.Emoji.Render(step.Emoji)), "")
	}
	if body := m.body(snap.Index, step.Body, width); body != "" {
		sections = append(sections, body, "")
	}
	if len(snap.Options) > 0 {
		sections = append(sections, m.renderOptions(snap.Options), "")
	}

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, m.indicator.View()), "")

	bar := wizard.NewButtonBar(m.buttons(snap, step))
	bar.SetWidth(width)
	sections = append(sections, bar.Render())

	screen := wizard.RenderModal(step.Heading, sections, m.width, m.height-2)
	return screen + "\n\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderHints(snap))
}

func (m *Model) body(index int, text string, width int) string {
	if width != m.bodyWidth {
		m.bodies = make(map[int]string)
		m.bodyWidth = width
	}
	if out, ok := m.bodies[index]; ok {
		return out
	}
	out := renderMarkdown(text, width)
	m.bodies[index] = out
	return out
}

func (m *Model) renderOptions(options []flow.Option) string {
	s := theme.Current().S()
	lines := make([]string, 0, len(options))
	for i, o := range options {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		mark := "( )"
		if o.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, o.Title)
		switch {
		case o.Selected:
			line = s.OptionSelected.Render(line)
		case i == m.cursor:
			line = s.OptionCursor.Render(line)
		default:
			line = s.OptionNormal.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) buttons(snap flow.Snapshot, step content.Step) []wizard.Button {
	if snap.Index == 0 {
		return wizard.CreateCancelNextButtons(snap.Completed, step.ButtonLabel())
	}
	return wizard.CreateBackNextButtons(snap.CanRetreat, snap.Completed, step.ButtonLabel())
}

func (m *Model) renderHints(snap flow.Snapshot) string {
	var pairs []string
	add := func(b key.Binding) {
		pairs = append(pairs, b.Help().Key, b.Help().Desc)
	}
	if len(snap.Options) > 0 {
		add(m.keys.Up)
		add(m.keys.Select)
	}
	if snap.Index == snap.Count-1 {
		pairs = append(pairs, m.keys.Continue.Help().Key, "finish")
	} else {
		add(m.keys.Continue)
	}
	if snap.Index == 0 {
		pairs = append(pairs, "esc", "cancel")
	} else {
		add(m.keys.Back)
	}
	return wizard.RenderHintBar(pairs...)
}
