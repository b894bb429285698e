package timelog

import "time"

// ProjectRef is the project a time entry is booked against.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeEntry is one recorded (or still running) timer session.
type TimeEntry struct {
	ID              string     `json:"id"`
	Project         ProjectRef `json:"project"`
	Task            string     `json:"task"`
	Start           *time.Time `json:"startTimestamp"`
	End             *time.Time `json:"endTimestamp"`
	Running         bool       `json:"isRunning"`
	DurationHours   float64    `json:"durationHours"`
	DurationDisplay string     `json:"durationDisplay"`
}

// FindRunning returns the first running entry and how many entries are
// flagged as running in total.
func FindRunning(entries []TimeEntry) (*TimeEntry, int) {
	var first *TimeEntry
	count := 0
	for i := range entries {
		if !entries[i].Running {
			continue
		}
		if first == nil {
			e := entries[i]
			first = &e
		}
		count++
	}
	return first, count
}
