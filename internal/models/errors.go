package models

import (
	"fmt"
	"strings"
)

// UnknownCardError reports a card name that does not exist in the catalog.
// Suggestions holds close matches, best first, and may be empty.
type UnknownCardError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCardError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown card %q", e.Name)
	}
	return fmt.Sprintf("unknown card %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// InvalidInventoryError reports player data that fails validation before
// planning starts.
type InvalidInventoryError struct {
	Field  string
	Reason string
}

func (e *InvalidInventoryError) Error() string {
	return fmt.Sprintf("invalid player data: %s: %s", e.Field, e.Reason)
}
