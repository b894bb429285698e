package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"timetracker/internal/project"
	"timetracker/internal/timelog"
)

// Error is a failure reported by the server. Its text is the server's
// message, unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client calls a remote Server. It satisfies the same procedures as the
// local repository.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) GetProjects(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, name string) (*project.Project, error) {
	var p project.Project
	if err := c.do(ctx, http.MethodPost, "/projects", CreateProjectRequest{Name: name}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetTodayEntries(ctx context.Context) ([]timelog.TimeEntry, error) {
	var entries []timelog.TimeEntry
	if err := c.do(ctx, http.MethodGet, "/entries/today", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) StartTimer(ctx context.Context, projectID, task string) error {
	return c.do(ctx, http.MethodPost, "/timers/start", StartTimerRequest{ProjectID: projectID, Task: task}, nil)
}

func (c *Client) StopTimer(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodPost, "/timers/stop", StopTimerRequest{EntryID: entryID}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &Error{Status: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
