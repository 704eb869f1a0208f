package model

import "errors"

// Common errors used across the application
var (
	// Ban store errors
	ErrBanNotFound = errors.New("ban record not found")

	// Roster errors
	ErrPlayerNotFound = errors.New("player not found")

	// Validation errors
	ErrInvalidPlayer = errors.New("player must have a unique id and a name")
)
