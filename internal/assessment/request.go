// Package assessment models security-gap assessment findings and
// renders them as JIRA wiki markup.
package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Priorities recognized by the tracker, highest first.
var Priorities = []string{"Blocker", "Critical", "Major", "Normal", "Minor"}

// Request describes one security gap to be filed as a ticket.
type Request struct {
	Summary      string       `json:"summary"`
	ReferenceURL string       `json:"reference_url,omitempty"`
	Background   string       `json:"background"`
	CurrentState CurrentState `json:"current_state"`
	Tasks        []TaskGroup  `json:"tasks"`
	OutOfScope   []string     `json:"out_of_scope,omitempty"`
	EffortDays   int          `json:"effort_days"`
	Epic         string       `json:"epic,omitempty"`
	Component    string       `json:"component,omitempty"`
	Priority     string       `json:"priority,omitempty"`
}

// CurrentState splits the assessed control into what exists and what
// is missing.
type CurrentState struct {
	Implemented []string `json:"implemented"`
	Missing     []string `json:"missing"`
}

// TaskGroup is a titled set of remediation work items.
type TaskGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: field %q %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError, handling
// wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Parse decodes a Request from JSON and validates it.
func Parse(r io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks the request invariants. The first offending field is
// reported.
func (r *Request) Validate() error {
	if r.Summary == "" {
		return &ValidationError{Field: "summary", Message: "is required"}
	}
	if r.Background == "" {
		return &ValidationError{Field: "background", Message: "is required"}
	}
	if len(r.CurrentState.Implemented) == 0 && len(r.CurrentState.Missing) == 0 {
		return &ValidationError{Field: "current_state", Message: "must list implemented or missing items"}
	}
	if len(r.Tasks) == 0 {
		return &ValidationError{Field: "tasks", Message: "must be a non-empty list"}
	}
	for i, g := range r.Tasks {
		if g.Title == "" {
			return &ValidationError{Field: fmt.Sprintf("tasks[%d].title", i), Message: "is required"}
		}
		if len(g.Items) == 0 {
			return &ValidationError{Field: fmt.Sprintf("tasks[%d].items", i), Message: "must be a non-empty list"}
		}
	}
	if r.EffortDays <= 0 {
		return &ValidationError{Field: "effort_days", Message: "must be a positive integer"}
	}
	if r.Priority != "" && !validPriority(r.Priority) {
		return &ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("must be one of %v", Priorities),
		}
	}
	return nil
}

func validPriority(p string) bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}
