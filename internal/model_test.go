package internal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"timetracker/internal/project"
	"timetracker/internal/teatest"
	"timetracker/internal/testutil"
	"timetracker/internal/timer"
	"timetracker/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tuiHarness struct {
	driver *teatest.Driver
	model  *Model
	repo   *project.Repository
	toasts *ToastBoard
	clock  *testutil.Clock
}

func newTUI(t *testing.T, projects ...string) *tuiHarness {
	t.Helper()
	clock := testutil.NewClock(time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local))
	repo := project.NewRepository(testutil.NewTestDB(t)).WithClock(clock.Now)
	for _, name := range projects {
		_, err := repo.CreateProject(context.Background(), name)
		require.NoError(t, err)
	}

	toasts := &ToastBoard{}
	tr := tracker.New(tracker.Deps{
		Backend:  repo,
		Notifier: toasts,
		Ticker: timer.New(
			timer.WithClock(clock.Now),
			timer.WithScheduler(func(time.Duration, func()) func() { return func() {} }),
		),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(tr.Close)

	m := NewModel(tr, toasts)
	d := teatest.New(t, m)
	d.DrainInit()
	return &tuiHarness{driver: d, model: m, repo: repo, toasts: toasts, clock: clock}
}

func TestTUI_EmptyState(t *testing.T) {
	h := newTUI(t)
	assert.Contains(t, h.driver.View(), "No projects yet")
}

func TestTUI_ActivateSelectsFirstProject(t *testing.T) {
	h := newTUI(t, "Acme", "Globex")

	opt, ok := h.model.SelectedOption()
	require.True(t, ok)
	assert.Equal(t, "Acme", opt.Label)
	assert.Equal(t, opt.Value, h.model.Tracker.SelectedProject())

	view := h.driver.View()
	assert.Contains(t, view, "Acme")
	assert.Contains(t, view, "00:00:00")
	assert.Contains(t, view, "Stopped")
}

func TestTUI_ProjectPickerCycles(t *testing.T) {
	h := newTUI(t, "Acme", "Globex")

	h.driver.PressRight()
	opt, _ := h.model.SelectedOption()
	assert.Equal(t, "Globex", opt.Label)

	h.driver.PressRight()
	opt, _ = h.model.SelectedOption()
	assert.Equal(t, "Globex", opt.Label)

	h.driver.PressLeft()
	opt, _ = h.model.SelectedOption()
	assert.Equal(t, "Acme", opt.Label)
	assert.Equal(t, opt.Value, h.model.Tracker.SelectedProject())
}

func TestTUI_StartWithoutTaskShowsError(t *testing.T) {
	h := newTUI(t, "Acme")

	h.driver.PressKey('s')

	toast, ok := h.toasts.Last()
	require.True(t, ok)
	assert.Equal(t, tracker.VariantError, toast.Variant)
	assert.Equal(t, "Please select project and enter task", toast.Message)
	assert.Contains(t, h.driver.View(), "Please select project and enter task")
}

func TestTUI_StartAndStop(t *testing.T) {
	h := newTUI(t, "Acme")

	h.driver.PressTab()
	h.driver.Type("Write report")
	assert.Equal(t, "Write report", h.model.Tracker.Task())
	h.driver.PressEnter()

	toast, ok := h.toasts.Last()
	require.True(t, ok)
	assert.Equal(t, "Timer started", toast.Message)
	require.NotNil(t, h.model.Tracker.Running())
	assert.Equal(t, "Write report", h.model.Tracker.Running().Task)

	view := h.driver.View()
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "05-03-2024 09:00")

	h.clock.Advance(30 * time.Minute)
	h.driver.PressKey('x')

	toast, _ = h.toasts.Last()
	assert.Equal(t, "Timer stopped", toast.Message)
	assert.Nil(t, h.model.Tracker.Running())
	assert.Equal(t, timer.Zero, h.model.Tracker.Elapsed())
	assert.Contains(t, h.driver.View(), "Total today")
	assert.Equal(t, "00:30", h.model.Tracker.TotalTime())
}

func TestTUI_StopWithoutRunningShowsInfo(t *testing.T) {
	h := newTUI(t, "Acme")

	h.driver.PressKey('x')

	toast, ok := h.toasts.Last()
	require.True(t, ok)
	assert.Equal(t, tracker.VariantInfo, toast.Variant)
	assert.Equal(t, "No running timer found", toast.Message)
}

func TestTUI_Quit(t *testing.T) {
	h := newTUI(t, "Acme")
	h.driver.PressKey('q')
	assert.True(t, h.driver.Quitting)
}

func TestTUI_TypingQDoesNotQuitInTaskInput(t *testing.T) {
	h := newTUI(t, "Acme")
	h.driver.PressTab()
	h.driver.Type("quick fix")
	assert.False(t, h.driver.Quitting)
	assert.Equal(t, "quick fix", h.model.Tracker.Task())

	h.driver.PressEsc()
	assert.Equal(t, focusProject, h.model.Focus)
}

func TestTUI_RefreshSelectsNewProject(t *testing.T) {
	h := newTUI(t)

	_, err := h.repo.CreateProject(context.Background(), "Acme")
	require.NoError(t, err)
	h.driver.PressKey('r')

	opt, ok := h.model.SelectedOption()
	require.True(t, ok)
	assert.Equal(t, "Acme", opt.Label)
	assert.Equal(t, opt.Value, h.model.Tracker.SelectedProject())

	h.driver.PressTab()
	h.driver.Type("Write report")
	h.driver.PressEnter()

	toast, ok := h.toasts.Last()
	require.True(t, ok)
	assert.Equal(t, "Timer started", toast.Message)
}

func TestTUI_RefreshKeepsSelectionWhenListReorders(t *testing.T) {
	h := newTUI(t, "Globex")
	selected := h.model.Tracker.SelectedProject()
	require.NotEmpty(t, selected)

	_, err := h.repo.CreateProject(context.Background(), "Acme")
	require.NoError(t, err)
	h.driver.PressKey('r')

	opt, ok := h.model.SelectedOption()
	require.True(t, ok)
	assert.Equal(t, "Globex", opt.Label)
	assert.Equal(t, 1, h.model.ProjectIndex)
	assert.Equal(t, selected, h.model.Tracker.SelectedProject())
}

func TestTUI_KeyPressClearsToast(t *testing.T) {
	h := newTUI(t, "Acme")

	h.driver.PressKey('x')
	_, ok := h.toasts.Last()
	require.True(t, ok)

	h.driver.PressRight()
	_, ok = h.toasts.Last()
	assert.False(t, ok)
	assert.NotContains(t, h.driver.View(), "No running timer found")
}
