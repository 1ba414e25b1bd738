package models

import (
	"fmt"
	"strings"
)

// Status is the administrator-controlled account state.
type Status string

const (
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
	StatusBlocked   Status = "Blocked"
)

// AllStatuses lists the statuses in display order.
var AllStatuses = []Status{StatusActive, StatusSuspended, StatusBlocked}

// Normalize treats a missing status as Active, as the backend does.
func (s Status) Normalize() Status {
	if s == "" {
		return StatusActive
	}
	return s
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Tone is the colour used to render the status: green, orange or red.
// Unknown statuses render red.
func (s Status) Tone() string {
	switch s.Normalize() {
	case StatusActive:
		return "green"
	case StatusSuspended:
		return "orange"
	default:
		return "red"
	}
}

// Transitions returns the statuses an account in status s can be moved to:
// every known status except its current one.
func (s Status) Transitions() []Status {
	current := s.Normalize()
	out := make([]Status, 0, len(AllStatuses))
	for _, candidate := range AllStatuses {
		if candidate != current {
			out = append(out, candidate)
		}
	}
	return out
}

// ParseStatus accepts a status name case-insensitively.
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	for _, known := range AllStatuses {
		if strings.EqualFold(string(known), v) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", v)
}
