package events

import (
	"errors"
	"time"
)

// Status is the moderation state of a convoy event
type Status string

const (
	StatusApproved  Status = "approved"
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Style is the display treatment for an event status
type Style struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var styles = map[Status]Style{
	StatusApproved:  {Label: "Approved", Color: "success"},
	StatusPending:   {Label: "Pending Review", Color: "warning"},
	StatusRejected:  {Label: "Rejected", Color: "error"},
	StatusCancelled: {Label: "Cancelled", Color: "default"},
}

var defaultStyle = Style{Label: "Unknown", Color: "default"}

// Style returns the display style for the status, with a defined fallback
// for unrecognized values.
func (s Status) Style() Style {
	if st, ok := styles[s]; ok {
		return st
	}
	return defaultStyle
}

// Event is a convoy event as published by the hub backend
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Departure   string    `json:"departure,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Server      string    `json:"server,omitempty"`
}

var (
	ErrZeroRange      = errors.New("calendar range bounds are required")
	ErrEndBeforeStart = errors.New("calendar range must end after it starts")
)

// ValidateRange checks a calendar query range
func ValidateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroRange
	}
	if !to.After(from) {
		return ErrEndBeforeStart
	}
	return nil
}
