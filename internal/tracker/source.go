package tracker

import (
	"context"
	"sync"

	"timetracker/internal/timelog"
)

// DataSource delivers today's entries to subscribers. Deliveries happen on
// every refresh; the source owns the underlying transport.
type DataSource interface {
	Subscribe(fn func(entries []timelog.TimeEntry, err error))
	RequestRefresh(ctx context.Context) error
}

// EntryLister fetches the authoritative list of today's entries.
type EntryLister interface {
	GetTodayEntries(ctx context.Context) ([]timelog.TimeEntry, error)
}

// BackendSource is a DataSource that re-fetches from a backend on demand.
type BackendSource struct {
	lister EntryLister

	mu          sync.Mutex
	subscribers []func([]timelog.TimeEntry, error)
}

func NewBackendSource(lister EntryLister) *BackendSource {
	return &BackendSource{lister: lister}
}

func (s *BackendSource) Subscribe(fn func(entries []timelog.TimeEntry, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// RequestRefresh fetches the list and delivers it, or the error, to every
// subscriber.
func (s *BackendSource) RequestRefresh(ctx context.Context) error {
	entries, err := s.lister.GetTodayEntries(ctx)

	s.mu.Lock()
	subscribers := make([]func([]timelog.TimeEntry, error), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(entries, err)
	}
	return err
}
