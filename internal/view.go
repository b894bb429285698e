package internal

import (
	"fmt"
	"strings"

	"timetracker/internal/tracker"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	projectSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	projectStyle = lipgloss.NewStyle().
			Padding(0, 1)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	toastStyles = map[tracker.Variant]lipgloss.Style{
		tracker.VariantSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		tracker.VariantError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		tracker.VariantInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("170")).
		Background(lipgloss.Color("235"))
	return s
}

func (m *Model) View() string {
	if len(m.Tracker.ProjectOptions()) == 0 {
		return m.emptyStateView()
	}
	return m.mainView()
}

func (m *Model) emptyStateView() string {
	body := titleStyle.Render("Time Tracker") + "\n\n" +
		inactiveStyle.Render("No projects yet. Add one with 'timetracker project add'.")
	if toast := m.toastView(); toast != "" {
		body += "\n\n" + toast
	}
	return lipgloss.Place(80, 24, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	width := 80
	if m.Width > 0 && m.Width < width {
		width = m.Width
	}
	sb.WriteString(titleStyle.Width(width).Render("Time Tracker"))
	sb.WriteString("\n\n")

	controls := lipgloss.JoinVertical(lipgloss.Left,
		m.projectPickerView(),
		"",
		labelStyle.Render("Task    ")+m.TaskInput.View(),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Width(52).Render(controls),
		"  ",
		m.timerView(),
	)
	sb.WriteString(top)
	sb.WriteString("\n\n")

	sb.WriteString(boxStyle.Render(m.Table.View()))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Total today: ") + timerDisplayStyle.Render(m.Tracker.TotalTime()))
	sb.WriteString("\n\n")

	if toast := m.toastView(); toast != "" {
		sb.WriteString(toast)
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(m.helpText()))

	return sb.String()
}

func (m *Model) projectPickerView() string {
	opt, _ := m.SelectedOption()
	name := projectStyle.Render(opt.Label)
	if m.Focus == focusProject {
		name = projectSelectedStyle.Render(opt.Label)
	}
	return labelStyle.Render("Project ") + "◀ " + name + " ▶"
}

func (m *Model) timerView() string {
	elapsed := m.Tracker.Elapsed()
	running := m.Tracker.Running()

	var sb strings.Builder
	if running != nil {
		sb.WriteString(timerRunningStyle.Render(elapsed))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("%s · %s", running.Project.Name, running.Task))
	} else {
		sb.WriteString(timerDisplayStyle.Render(elapsed))
		sb.WriteString("\n\n")
		sb.WriteString(inactiveStyle.Render("Stopped"))
	}
	return boxStyle.Width(24).Height(4).Render(sb.String())
}

func (m *Model) toastView() string {
	toast, ok := m.Toasts.Last()
	if !ok {
		return ""
	}
	style, ok := toastStyles[toast.Variant]
	if !ok {
		style = inactiveStyle
	}
	return style.Render(fmt.Sprintf("%s: %s", toast.Title, toast.Message))
}

func (m *Model) helpText() string {
	if m.Focus == focusTask {
		return "Type task | Start: Enter | Back: Esc/Tab | Quit: Ctrl+C"
	}
	return "Project: ←/→ | Task: Tab | Start: s | Stop: x | Refresh: r | Scroll: ↑/↓ | Quit: q"
}
