package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Variant classifies a notification.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Notifier displays a fire-and-forget notification to the user.
type Notifier interface {
	Notify(title, message string, variant Variant)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(title, message string, variant Variant)

func (f NotifierFunc) Notify(title, message string, variant Variant) {
	f(title, message, variant)
}

// LogNotifier records notifications as structured log lines.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(title, message string, variant Variant) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if variant == VariantError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "notification", "title", title, "message", message, "variant", string(variant))
}

// WriterNotifier prints one line per notification.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(title, message string, variant Variant) {
	fmt.Fprintf(n.W, "[%s] %s: %s\n", variant, title, message)
}
