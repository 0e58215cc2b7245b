package database

import "errors"

var (
	// ErrUnknownList is returned for a list name other than whitelist or blacklist.
	ErrUnknownList = errors.New("unknown list: must be whitelist or blacklist")

	// ErrEmptyPattern is returned when a list entry is empty after normalization.
	ErrEmptyPattern = errors.New("list pattern must not be empty")
)
