package rules

import "errors"

// Rule catalogue validation errors.
var (
	// ErrNegativeWeight is returned when a rule or category weight is below zero.
	ErrNegativeWeight = errors.New("invalid weight: must be non-negative")

	// ErrEmptyCategoryName is returned when a keyword category has no name.
	ErrEmptyCategoryName = errors.New("invalid keyword category: name is empty")

	// ErrDuplicateCategory is returned when two keyword categories share a name.
	ErrDuplicateCategory = errors.New("invalid keyword category: duplicate name")
)
