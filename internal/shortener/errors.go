package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no link matches the requested code.
	ErrNotFound = errors.New("short link not found")

	// ErrExpired is returned when a link exists but no longer serves
	// redirects, either because its expiry passed or it was deactivated.
	ErrExpired = errors.New("short link expired")

	// ErrInvalidAlias is returned when a custom alias fails format validation.
	ErrInvalidAlias = errors.New("invalid custom alias")

	// ErrAliasTaken is returned when a custom alias is already in use.
	ErrAliasTaken = errors.New("custom alias already taken")

	// ErrExhausted is returned when allocation runs out of candidate
	// attempts at every permitted code length.
	ErrExhausted = errors.New("short code allocation exhausted")

	// ErrInvalidTarget is returned when the target URL cannot be shortened.
	ErrInvalidTarget = errors.New("invalid target url")
)

// UniqueViolationError reports that an insert collided with an existing
// row in the joint code and alias namespace.
type UniqueViolationError struct {
	Code Code
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("short link %q already exists", string(e.Code))
}
