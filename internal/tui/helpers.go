package tui

import (
	"strings"

	"github.com/felwick/taskboard/internal/model"
)

// truncate shortens a string to maxLen with ellipsis
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// repeat returns a string repeated n times
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// parseOptionalDate turns form input into a date. Blank means no date.
func parseOptionalDate(value string) (*model.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
