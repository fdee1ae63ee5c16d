package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/report"
)

// Options tune the interactive tracker.
type Options struct {
	SnoozeDays int    // days added by the snooze key
	ReportDir  string // where r writes the text report
}

type mode int

const (
	browsing mode = iota
	adding
	quickLogging
)

// add form fields, in tab order
const (
	fieldTitle = iota
	fieldLocation
	fieldOwner
	fieldFrequency
	fieldDue
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Location", "Owner", "Frequency", "Due"}

const defaultFrequency = "Monthly"

// notice is the last tracker event, shared between copies of Model.
type notice struct {
	level checklist.Level
	text  string
}

// Model is the Bubble Tea model for the checklist tracker.
type Model struct {
	tracker *checklist.Tracker
	opts    Options
	unsub   func()

	tab  int
	list list.Model

	mode    mode
	form    [fieldCount]textinput.Model
	focus   int
	formErr string
	quick   textinput.Model

	notice *notice
	width  int
	height int
}

var (
	tabBind    = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/undo"))
	snoozeBind = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snooze"))
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add check"))
	logBind    = key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "quick log"))
	reportBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report"))
)

// New builds the model and subscribes it to tracker events.
func New(t *checklist.Tracker, opts Options) Model {
	if opts.SnoozeDays <= 0 {
		opts.SnoozeDays = 3
	}
	if opts.ReportDir == "" {
		opts.ReportDir = "."
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("check", "checks")
	extra := func() []key.Binding {
		return []key.Binding{tabBind, toggleBind, snoozeBind, addBind, logBind, reportBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		tracker: t,
		opts:    opts,
		list:    l,
		notice:  &notice{},
	}
	for i := range m.form {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-10s ", fieldLabels[i]+":")
		ti.CharLimit = 200
		m.form[i] = ti
	}
	m.form[fieldFrequency].Placeholder = defaultFrequency
	m.form[fieldDue].Placeholder = "YYYY-MM-DD (optional)"

	m.quick = textinput.New()
	m.quick.Prompt = "> "
	m.quick.Placeholder = "What happened?"
	m.quick.CharLimit = 500

	n := m.notice
	m.unsub = t.Subscribe(func(ev checklist.Event, _ model.State) {
		n.level, n.text = ev.Level, ev.Message
	})
	m.refresh()
	return m
}

// Run starts the full-screen tracker and blocks until the user quits.
func Run(t *checklist.Tracker, opts Options) error {
	m := New(t, opts)
	defer m.unsub()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) category() model.Category { return model.Categories[m.tab] }

func (m Model) selected() (model.ChecklistItem, bool) {
	it, ok := m.list.SelectedItem().(checkItem)
	if !ok {
		return model.ChecklistItem{}, false
	}
	return it.item, true
}

// refresh reloads the current category from the tracker, keeping the cursor.
func (m *Model) refresh() {
	s := m.tracker.State()
	today := m.tracker.Today()
	idx := m.list.Index()
	m.list.SetItems(toItems(s.Items(m.category()), today))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		idx = n - 1
	}
	m.list.Select(idx)

	st := checklist.Summarize(s, today)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d%%",
		titleStyle.Render("Safety 360"),
		successStyle.Render("✔"), st.Completed,
		pendingStyle.Render("•"), st.Open,
		errorStyle.Render("!"), st.Overdue,
		accentStyle.Render("Done"), st.CompletionRate,
	)
}

func (m *Model) setNotice(level checklist.Level, text string) {
	m.notice.level, m.notice.text = level, text
}

func (m *Model) openForm() tea.Cmd {
	m.mode = adding
	m.formErr = ""
	for i := range m.form {
		m.form[i].SetValue("")
		m.form[i].Blur()
	}
	m.focus = fieldTitle
	return m.form[m.focus].Focus()
}

func (m *Model) closeForm() {
	m.mode = browsing
	m.form[m.focus].Blur()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.form[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m.form[m.focus].Focus()
}

func (m *Model) submitForm() {
	due := strings.TrimSpace(m.form[fieldDue].Value())
	if due != "" {
		d, ok := duedate.Parse(due, m.tracker.Now().Location())
		if !ok {
			m.formErr = "Due date must look like 2024-01-31"
			return
		}
		due = duedate.ISO(d)
	}
	freq := strings.TrimSpace(m.form[fieldFrequency].Value())
	if freq == "" {
		freq = defaultFrequency
	}
	_, err := m.tracker.AddCheck(checklist.NewCheck{
		Category:  m.category(),
		Title:     m.form[fieldTitle].Value(),
		Location:  m.form[fieldLocation].Value(),
		Owner:     m.form[fieldOwner].Value(),
		Frequency: freq,
		Due:       due,
	})
	var verr *checklist.ValidationError
	if errors.As(err, &verr) {
		m.formErr = "Fill in all required fields (missing: " + strings.Join(verr.Fields, ", ") + ")"
		return
	}
	m.closeForm()
	m.refresh()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(ws.Width, max(ws.Height-9, 4))
		return m, nil
	}

	switch m.mode {
	case adding:
		return m.updateForm(msg)
	case quickLogging:
		return m.updateQuickLog(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		step := 1
		if km.String() == "shift+tab" {
			step = len(model.Categories) - 1
		}
		m.tab = (m.tab + step) % len(model.Categories)
		m.list.ResetSelected()
		m.list.ResetFilter()
		m.refresh()
		return m, nil
	case " ":
		if it, ok := m.selected(); ok {
			_, _ = m.tracker.Toggle(m.category(), it.ID)
			m.refresh()
		}
		return m, nil
	case "s":
		if it, ok := m.selected(); ok {
			_, _, _ = m.tracker.Snooze(m.category(), it.ID, m.opts.SnoozeDays)
			m.refresh()
		}
		return m, nil
	case "a":
		cmd := m.openForm()
		return m, cmd
	case "i":
		m.mode = quickLogging
		m.quick.SetValue("")
		cmd := m.quick.Focus()
		return m, cmd
	case "r":
		path, err := report.Export(m.opts.ReportDir, m.tracker.State(), m.tracker.Now())
		if err != nil {
			m.setNotice(checklist.LevelError, "Report failed: "+err.Error())
		} else {
			m.setNotice(checklist.LevelSuccess, "Report saved to "+path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "tab", "down":
			cmd := m.moveFocus(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "enter":
			if m.focus < fieldCount-1 {
				cmd := m.moveFocus(1)
				return m, cmd
			}
			m.submitForm()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateQuickLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = browsing
			m.quick.Blur()
			return m, nil
		case "enter":
			_, _, _ = m.tracker.QuickLog(m.quick.Value())
			m.mode = browsing
			m.quick.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.quick, cmd = m.quick.Update(msg)
	return m, cmd
}

func (m Model) tabs() string {
	parts := make([]string, 0, len(model.Categories))
	for i, c := range model.Categories {
		label := c.Label() + " checks"
		if i == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) footer() string {
	switch m.mode {
	case adding:
		lines := []string{titleStyle.Render("New " + m.category().Label() + " check")}
		for i := range m.form {
			lines = append(lines, m.form[i].View())
		}
		if m.formErr != "" {
			lines = append(lines, errorStyle.Render(m.formErr))
		}
		lines = append(lines, helpStyle.Render("tab next • enter save on last field • esc cancel"))
		return panelStyle.Render(strings.Join(lines, "\n"))
	case quickLogging:
		return panelStyle.Render(titleStyle.Render("Quick incident log") + "\n" + m.quick.View() +
			"\n" + helpStyle.Render("enter log • esc cancel"))
	}
	if m.notice.text == "" {
		return ""
	}
	switch m.notice.level {
	case checklist.LevelError:
		return errorStyle.Render("✖ " + m.notice.text)
	case checklist.LevelSuccess:
		return successStyle.Render("✔ " + m.notice.text)
	default:
		return accentStyle.Render("• " + m.notice.text)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	parts := []string{m.tabs(), m.list.View()}
	if f := m.footer(); f != "" {
		parts = append(parts, f)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
