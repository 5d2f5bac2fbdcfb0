package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskTextLength is the maximum number of characters in a task's text.
const MaxTaskTextLength = 500

// Task is a short text item with a completion flag.
//
// ID and CreatedAt are assigned by the store when the task is created and
// never change afterwards. Completed starts out false and is only ever
// flipped, never set directly.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// NormalizeTaskText trims surrounding whitespace from text and checks that
// the result is a valid task text.
func NormalizeTaskText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", NewValidationError("text", "cannot be empty", ErrEmptyTaskText)
	}

	if utf8.RuneCountInString(trimmed) > MaxTaskTextLength {
		return "", NewValidationError(
			"text",
			fmt.Sprintf("must be at most %d characters", MaxTaskTextLength),
			ErrTaskTextTooLong,
		)
	}

	return trimmed, nil
}

// ValidateTaskID checks that id is present. Whether it is a well-formed store
// identifier is decided by the store.
func ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	return nil
}
