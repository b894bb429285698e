package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timetracker/internal/project"
	"timetracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Client, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local))
	repo := project.NewRepository(testutil.NewTestDB(t)).WithClock(clock.Now)
	srv := NewServer(repo, "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", ts.Client()), clock
}

func TestClient_RoundTrip(t *testing.T) {
	client, clock := newTestServer(t)
	ctx := context.Background()

	p, err := client.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)

	projects, err := client.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)

	require.NoError(t, client.StartTimer(ctx, p.ID, "Write report"))

	entries, err := client.GetTodayEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Running)
	assert.Nil(t, entries[0].End)
	require.NotNil(t, entries[0].Start)
	assert.True(t, entries[0].Start.Equal(clock.Now()))
	assert.Equal(t, "Acme", entries[0].Project.Name)

	clock.Advance(45 * time.Minute)
	require.NoError(t, client.StopTimer(ctx, entries[0].ID))

	entries, err = client.GetTodayEntries(ctx)
	require.NoError(t, err)
	assert.False(t, entries[0].Running)
	assert.InDelta(t, 0.75, entries[0].DurationHours, 1e-9)
	assert.Equal(t, "0h 45m", entries[0].DurationDisplay)
}

func TestClient_ErrorMessagesAreVerbatim(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	p, err := client.CreateProject(ctx, "Acme")
	require.NoError(t, err)
	require.NoError(t, client.StartTimer(ctx, p.ID, "first"))

	err = client.StartTimer(ctx, p.ID, "second")
	require.Error(t, err)
	assert.Equal(t, "only one timer can run at a time", err.Error())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestClient_StatusMapping(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		status int
	}{
		{"missing fields", func() error { return client.StartTimer(ctx, "", "") }, http.StatusBadRequest},
		{"unknown project", func() error { return client.StartTimer(ctx, "nope", "task") }, http.StatusNotFound},
		{"unknown entry", func() error { return client.StopTimer(ctx, "nope") }, http.StatusNotFound},
		{"blank project name", func() error { _, err := client.CreateProject(ctx, " "); return err }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *Error
			require.ErrorAs(t, tt.call(), &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestServer_HealthAndBadBody(t *testing.T) {
	repo := project.NewRepository(testutil.NewTestDB(t))
	h := NewServer(repo, "", slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/timers/start", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid request body"}`, rec.Body.String())
}

func TestServer_WireShape(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	repo := project.NewRepository(testutil.NewTestDB(t)).WithClock(clock.Now)
	p, err := repo.CreateProject(context.Background(), "Acme")
	require.NoError(t, err)
	require.NoError(t, repo.StartTimer(context.Background(), p.ID, "task"))

	h := NewServer(repo, "", slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries/today", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, key := range []string{`"startTimestamp"`, `"endTimestamp":null`, `"isRunning":true`, `"durationHours"`, `"durationDisplay"`, `"project":{`} {
		assert.Contains(t, body, key)
	}
}
