package project

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyRunning = errors.New("only one timer can run at a time")
	ErrNotRunning     = errors.New("time entry is not running")
)

// Project is the reference data a time entry is booked against.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
