package internal

import (
	"context"

	"timetracker/internal/tracker"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgTick is sent whenever the elapsed display changes.
type MsgTick struct{}

type msgActivated struct{}

// msgCommandDone follows a backend call; the outcome reaches the user
// through the toast board.
type msgCommandDone struct{}

const (
	focusProject = iota
	focusTask
)

var columnWidths = map[string]int{
	"projectName":     16,
	"task":            24,
	"startFormatted":  16,
	"endFormatted":    16,
	"durationDisplay": 10,
}

type Model struct {
	Tracker      *tracker.Tracker
	Toasts       *ToastBoard
	TaskInput    textinput.Model
	Table        table.Model
	Focus        int
	ProjectIndex int
	Busy         bool
	Width        int
}

func NewModel(tr *tracker.Tracker, toasts *ToastBoard) *Model {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	cols := []table.Column{}
	for _, c := range tr.Columns() {
		cols = append(cols, table.Column{Title: c.Label, Width: columnWidths[c.Field]})
	}
	tbl := table.New(
		table.WithColumns(cols),
		table.WithHeight(8),
		table.WithFocused(true),
	)
	tbl.SetStyles(tableStyles())

	return &Model{
		Tracker:   tr,
		Toasts:    toasts,
		TaskInput: ti,
		Table:     tbl,
		Focus:     focusProject,
	}
}

func (m *Model) Init() tea.Cmd {
	tr := m.Tracker
	return func() tea.Msg {
		tr.Activate(context.Background())
		return msgActivated{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, nil
	case msgActivated:
		m.syncProject()
		m.refreshTable()
		return m, nil
	case msgCommandDone:
		m.Busy = false
		m.syncProject()
		m.refreshTable()
		return m, nil
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// SelectedOption returns the project option under the picker, if any.
func (m *Model) SelectedOption() (tracker.ProjectOption, bool) {
	options := m.Tracker.ProjectOptions()
	if m.ProjectIndex >= 0 && m.ProjectIndex < len(options) {
		return options[m.ProjectIndex], true
	}
	return tracker.ProjectOption{}, false
}

// syncProject keeps the picker on the tracker's selected project after the
// option list changes, falling back to the nearest index.
func (m *Model) syncProject() {
	options := m.Tracker.ProjectOptions()
	if id := m.Tracker.SelectedProject(); id != "" {
		for i, opt := range options {
			if opt.Value == id {
				m.ProjectIndex = i
				return
			}
		}
	}
	m.selectProject(m.ProjectIndex)
}

func (m *Model) selectProject(i int) {
	options := m.Tracker.ProjectOptions()
	if i >= len(options) {
		i = len(options) - 1
	}
	if i < 0 {
		i = 0
	}
	m.ProjectIndex = i
	if opt, ok := m.SelectedOption(); ok {
		m.Tracker.SelectProject(opt.Value)
	} else {
		m.Tracker.SelectProject("")
	}
}

func (m *Model) refreshTable() {
	cols := m.Tracker.Columns()
	var rows []table.Row
	for _, r := range m.Tracker.Rows() {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = r.Value(c.Field)
		}
		rows = append(rows, row)
	}
	m.Table.SetRows(rows)
}

func (m *Model) start() tea.Cmd {
	if m.Busy {
		return nil
	}
	m.Busy = true
	tr := m.Tracker
	return func() tea.Msg {
		_ = tr.Start(context.Background())
		return msgCommandDone{}
	}
}

func (m *Model) stop() tea.Cmd {
	if m.Busy {
		return nil
	}
	m.Busy = true
	tr := m.Tracker
	return func() tea.Msg {
		_ = tr.Stop(context.Background())
		return msgCommandDone{}
	}
}

func (m *Model) refresh() tea.Cmd {
	if m.Busy {
		return nil
	}
	m.Busy = true
	tr := m.Tracker
	return func() tea.Msg {
		tr.LoadProjects(context.Background())
		_ = tr.Refresh(context.Background())
		return msgCommandDone{}
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.Toasts.Clear()

	if m.Focus == focusTask {
		return m.handleTaskInput(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		if m.ProjectIndex > 0 {
			m.selectProject(m.ProjectIndex - 1)
		}
	case "right", "l":
		if m.ProjectIndex < len(m.Tracker.ProjectOptions())-1 {
			m.selectProject(m.ProjectIndex + 1)
		}
	case "tab", "t":
		m.Focus = focusTask
		return m, m.TaskInput.Focus()
	case "s", "enter":
		return m, m.start()
	case "x":
		return m, m.stop()
	case "r":
		return m, m.refresh()
	case "up", "down", "k", "j":
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.Focus = focusProject
		m.TaskInput.Blur()
		return m, nil
	case "enter":
		m.Focus = focusProject
		m.TaskInput.Blur()
		return m, m.start()
	}

	var cmd tea.Cmd
	m.TaskInput, cmd = m.TaskInput.Update(msg)
	m.Tracker.SetTask(m.TaskInput.Value())
	return m, cmd
}
