package tracker

import (
	"bytes"
	"testing"
	"time"

	"timetracker/internal/timelog"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "", FormatDateTime(nil))

	ts := time.Date(2024, 3, 5, 9, 7, 42, 0, time.Local)
	assert.Equal(t, "05-03-2024 09:07", FormatDateTime(&ts))

	ts = time.Date(1999, 12, 31, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "31-12-1999 23:59", FormatDateTime(&ts))
}

func TestFormatDateTime_UsesLocalFields(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)
	local := ts.Local()
	want := local.Format("02-01-2006") + " " + local.Format("15:04")
	assert.Equal(t, want, FormatDateTime(&ts))
}

func hours(h ...float64) []timelog.TimeEntry {
	entries := make([]timelog.TimeEntry, len(h))
	for i, v := range h {
		entries[i].DurationHours = v
	}
	return entries
}

func TestTotalTime(t *testing.T) {
	tests := []struct {
		name    string
		entries []timelog.TimeEntry
		want    string
	}{
		{"empty", nil, "00:00"},
		{"missing durations count as zero", hours(0, 0), "00:00"},
		{"single", hours(1.5), "01:30"},
		{"sum", hours(1.5, 0.25), "01:45"},
		{"rounds minutes", hours(0.01), "00:01"},
		{"carries rounded hour", hours(0.999), "01:00"},
		{"no day wrap", hours(30), "30:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalTime(tt.entries))
		})
	}
}

func TestTotalTime_OrderIndependent(t *testing.T) {
	assert.Equal(t, TotalTime(hours(0.5, 1.25, 2)), TotalTime(hours(2, 0.5, 1.25)))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("Success", "Timer started", VariantSuccess)
	assert.Equal(t, "[success] Success: Timer started\n", buf.String())
}

func TestNotifierFunc(t *testing.T) {
	var got Variant
	NotifierFunc(func(_, _ string, v Variant) { got = v }).Notify("Info", "x", VariantInfo)
	assert.Equal(t, VariantInfo, got)
}
