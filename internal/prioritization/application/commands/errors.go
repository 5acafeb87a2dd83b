package commands

import "errors"

var (
	ErrInvalidDueDate    = errors.New("invalid due date")
	ErrInvalidImportance = errors.New("importance must be between 1 and 5")
)
