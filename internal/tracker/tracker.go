package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"timetracker/internal/project"
	"timetracker/internal/timelog"
	"timetracker/internal/timer"
)

const (
	MsgMissingInput   = "Please select project and enter task"
	MsgAlreadyRunning = "Only one timer can run at a time"
	MsgNoRunning      = "No running timer found"
	MsgStarted        = "Timer started"
	MsgStopped        = "Timer stopped"
)

// Rejection errors are returned when a command fails validation locally.
var (
	ErrMissingInput   = errors.New(MsgMissingInput)
	ErrAlreadyRunning = errors.New(MsgAlreadyRunning)
	ErrNoRunning      = errors.New(MsgNoRunning)
)

// Backend is the set of remote procedures the tracker consumes.
type Backend interface {
	EntryLister
	StartTimer(ctx context.Context, projectID, task string) error
	StopTimer(ctx context.Context, entryID string) error
	GetProjects(ctx context.Context) ([]project.Project, error)
}

// Column describes one column of the entries table.
type Column struct {
	Label string
	Field string
}

// ProjectOption is one choice of the project picker.
type ProjectOption struct {
	Label string
	Value string
}

// Row is a time entry prepared for display.
type Row struct {
	timelog.TimeEntry
	ProjectName    string
	StartFormatted string
	EndFormatted   string
}

// Value returns the display value of the named column field.
func (r Row) Value(field string) string {
	switch field {
	case "projectName":
		return r.ProjectName
	case "task":
		return r.Task
	case "startFormatted":
		return r.StartFormatted
	case "endFormatted":
		return r.EndFormatted
	case "durationDisplay":
		return r.DurationDisplay
	}
	return ""
}

var columns = []Column{
	{Label: "Project", Field: "projectName"},
	{Label: "Task", Field: "task"},
	{Label: "Start Time", Field: "startFormatted"},
	{Label: "End Time", Field: "endFormatted"},
	{Label: "Duration", Field: "durationDisplay"},
}

// Deps wires a Tracker. Source, Ticker and Logger are optional.
type Deps struct {
	Backend  Backend
	Source   DataSource
	Notifier Notifier
	Ticker   *timer.Ticker
	Logger   *slog.Logger
}

// Tracker is the view model of the time tracker: it loads projects and
// today's entries, validates and dispatches start/stop commands, and keeps
// the elapsed display of the running entry ticking.
type Tracker struct {
	backend  Backend
	source   DataSource
	notifier Notifier
	ticker   *timer.Ticker
	logger   *slog.Logger

	mu              sync.RWMutex
	selectedProject string
	task            string
	entries         []timelog.TimeEntry
	rows            []Row
	options         []ProjectOption
	running         *timelog.TimeEntry
}

func New(deps Deps) *Tracker {
	t := &Tracker{
		backend:  deps.Backend,
		source:   deps.Source,
		notifier: deps.Notifier,
		ticker:   deps.Ticker,
		logger:   deps.Logger,
	}
	if t.source == nil {
		t.source = NewBackendSource(deps.Backend)
	}
	if t.notifier == nil {
		t.notifier = LogNotifier{Logger: deps.Logger}
	}
	if t.ticker == nil {
		t.ticker = timer.New()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	t.source.Subscribe(t.receive)
	return t
}

// Activate loads the project list and requests today's entries.
func (t *Tracker) Activate(ctx context.Context) {
	t.LoadProjects(ctx)
	_ = t.source.RequestRefresh(ctx)
}

func (t *Tracker) LoadProjects(ctx context.Context) {
	projects, err := t.backend.GetProjects(ctx)
	if err != nil {
		t.logger.Error("loading projects", "error", err)
		t.notifier.Notify("Error", err.Error(), VariantError)
		return
	}

	options := make([]ProjectOption, 0, len(projects))
	for _, p := range projects {
		options = append(options, ProjectOption{Label: p.Name, Value: p.ID})
	}

	t.mu.Lock()
	t.options = options
	t.mu.Unlock()
}

// Refresh re-fetches today's entries.
func (t *Tracker) Refresh(ctx context.Context) error {
	return t.source.RequestRefresh(ctx)
}

// receive handles one delivery of the entry source.
func (t *Tracker) receive(entries []timelog.TimeEntry, err error) {
	if err != nil {
		t.logger.Error("loading today's entries", "error", err)
		t.notifier.Notify("Error", err.Error(), VariantError)
		return
	}

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			TimeEntry:      e,
			ProjectName:    e.Project.Name,
			StartFormatted: FormatDateTime(e.Start),
			EndFormatted:   FormatDateTime(e.End),
		})
	}

	running, count := timelog.FindRunning(entries)
	if count > 1 {
		t.logger.Warn("multiple running entries, using the first", "count", count, "entry", running.ID)
	}

	t.mu.Lock()
	t.entries = append([]timelog.TimeEntry(nil), entries...)
	t.rows = rows
	t.running = running
	t.mu.Unlock()

	t.ticker.Sync(running)
}

func (t *Tracker) SelectProject(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedProject = id
}

func (t *Tracker) SetTask(task string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.task = task
}

// Start asks the backend to open a timer for the selected project and task.
// Validation failures are notified and never reach the backend.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.RLock()
	projectID, task, running := t.selectedProject, t.task, t.running
	t.mu.RUnlock()

	if projectID == "" || strings.TrimSpace(task) == "" {
		t.notifier.Notify("Error", MsgMissingInput, VariantError)
		return ErrMissingInput
	}
	if running != nil {
		t.notifier.Notify("Error", MsgAlreadyRunning, VariantError)
		return ErrAlreadyRunning
	}

	if err := t.backend.StartTimer(ctx, projectID, task); err != nil {
		t.logger.Error("starting timer", "project", projectID, "error", err)
		t.notifier.Notify("Error", err.Error(), VariantError)
		return err
	}
	t.logger.Info("timer started", "project", projectID)
	t.notifier.Notify("Success", MsgStarted, VariantSuccess)
	_ = t.source.RequestRefresh(ctx)
	return nil
}

// Stop asks the backend to close the running entry.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.RLock()
	running := t.running
	t.mu.RUnlock()

	if running == nil {
		t.notifier.Notify("Info", MsgNoRunning, VariantInfo)
		return ErrNoRunning
	}

	if err := t.backend.StopTimer(ctx, running.ID); err != nil {
		t.logger.Error("stopping timer", "entry", running.ID, "error", err)
		t.notifier.Notify("Error", err.Error(), VariantError)
		return err
	}
	t.logger.Info("timer stopped", "entry", running.ID)
	t.notifier.Notify("Success", MsgStopped, VariantSuccess)
	_ = t.source.RequestRefresh(ctx)
	return nil
}

// Close releases the ticker's periodic task.
func (t *Tracker) Close() {
	t.ticker.Close()
}

func (t *Tracker) SelectedProject() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedProject
}

func (t *Tracker) Task() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.task
}

func (t *Tracker) Columns() []Column {
	return append([]Column(nil), columns...)
}

func (t *Tracker) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Row(nil), t.rows...)
}

func (t *Tracker) ProjectOptions() []ProjectOption {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]ProjectOption(nil), t.options...)
}

// Running returns the running entry, or nil.
func (t *Tracker) Running() *timelog.TimeEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.running == nil {
		return nil
	}
	e := *t.running
	return &e
}

func (t *Tracker) Elapsed() string {
	return t.ticker.Elapsed()
}

func (t *Tracker) TotalTime() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TotalTime(t.entries)
}
