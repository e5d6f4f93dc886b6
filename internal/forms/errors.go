package forms

import (
	"sort"
	"strings"
)

// NonFieldErrors is the key for errors that are not tied to one field
const NonFieldErrors = "__all__"

// Errors maps a form field name to its validation messages
type Errors map[string][]string

// Add records a message for field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one error was recorded
func (e Errors) Any() bool {
	return len(e) > 0
}

// Get returns the messages for field
func (e Errors) Get(field string) []string {
	return e[field]
}

// Error implements the error interface
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], " "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}
