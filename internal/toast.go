package internal

import (
	"sync"

	"timetracker/internal/tracker"
)

// Toast is the last notification shown in the status line.
type Toast struct {
	Title   string
	Message string
	Variant tracker.Variant
}

// ToastBoard keeps the most recent notification for the view.
type ToastBoard struct {
	mu   sync.Mutex
	last *Toast
}

func (b *ToastBoard) Notify(title, message string, variant tracker.Variant) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = &Toast{Title: title, Message: message, Variant: variant}
}

func (b *ToastBoard) Last() (Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return Toast{}, false
	}
	return *b.last, true
}

func (b *ToastBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = nil
}
