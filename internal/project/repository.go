package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"timetracker/internal/timelog"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000"

// Repository is the authoritative store for projects and time entries.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithClock replaces the repository's notion of "now".
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

func (r *Repository) GetProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM projects ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *Repository) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM projects WHERE id = ?", id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return &p, nil
}

func (r *Repository) CreateProject(ctx context.Context, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", ErrInvalidInput)
	}

	p := &Project{ID: uuid.New().String(), Name: name}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)",
		p.ID, p.Name, r.now().UTC().Format(timeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("project %q already exists: %w", name, ErrInvalidInput)
		}
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	return p, nil
}

// StartTimer opens a new running entry for the project.
func (r *Repository) StartTimer(ctx context.Context, projectID, task string) error {
	task = strings.TrimSpace(task)
	if projectID == "" || task == "" {
		return fmt.Errorf("project and task are required: %w", ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id = ?", projectID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking project: %w", err)
	}

	var running int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM time_entries WHERE is_running = 1").Scan(&running); err != nil {
		return fmt.Errorf("checking running entries: %w", err)
	}
	if running > 0 {
		return ErrAlreadyRunning
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO time_entries (id, project_id, task, start_time, is_running) VALUES (?, ?, ?, ?, 1)",
		uuid.New().String(), projectID, task, r.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return tx.Commit()
}

// StopTimer closes a running entry at the current time.
func (r *Repository) StopTimer(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("entry id is required: %w", ErrInvalidInput)
	}

	var running int
	err := r.db.QueryRowContext(ctx, "SELECT is_running FROM time_entries WHERE id = ?", entryID).Scan(&running)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("time entry %s: %w", entryID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("loading time entry: %w", err)
	}
	if running == 0 {
		return ErrNotRunning
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE time_entries SET end_time = ?, is_running = 0 WHERE id = ?",
		r.now().UTC().Format(timeLayout), entryID,
	)
	if err != nil {
		return fmt.Errorf("stopping time entry: %w", err)
	}
	return nil
}

// GetTodayEntries returns entries started since local midnight plus any
// entry still running from an earlier day, newest first.
func (r *Repository) GetTodayEntries(ctx context.Context) ([]timelog.TimeEntry, error) {
	now := r.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := r.db.QueryContext(ctx,
		`SELECT te.id, te.project_id, p.name, te.task, te.start_time, te.end_time, te.is_running
		 FROM time_entries te
		 JOIN projects p ON te.project_id = p.id
		 WHERE te.start_time >= ? OR te.is_running = 1
		 ORDER BY te.start_time DESC`,
		midnight.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("listing today's entries: %w", err)
	}
	defer rows.Close()

	entries := []timelog.TimeEntry{}
	for rows.Next() {
		var e timelog.TimeEntry
		var startedAt string
		var endedAt sql.NullString
		var running int
		if err := rows.Scan(&e.ID, &e.Project.ID, &e.Project.Name, &e.Task, &startedAt, &endedAt, &running); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		e.Running = running == 1
		e.Start = parseTime(startedAt)
		if endedAt.Valid {
			e.End = parseTime(endedAt.String)
		}
		var d time.Duration
		if e.Start != nil && e.End != nil {
			d = e.End.Sub(*e.Start)
		}
		e.DurationHours = d.Hours()
		e.DurationDisplay = durationDisplay(d)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func parseTime(s string) *time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func durationDisplay(d time.Duration) string {
	total := int(d.Minutes())
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
