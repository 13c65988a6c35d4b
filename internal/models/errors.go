package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores and services when a lookup matches nothing.
// Handlers map it to 404; callers inside the service layer treat it as a signal
// to fall through to the next tier, never as a failure.
var ErrNotFound = errors.New("record not found")

// ErrInvalidSymbol is returned when a symbol fails validation before any
// storage or network work happens.
var ErrInvalidSymbol = errors.New("invalid symbol")

// FetchExhaustedError reports that every attempt against the external
// provider failed. Err holds the last attempt's error.
type FetchExhaustedError struct {
	Symbol   string
	Attempts int
	Err      error
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("fetch for %s failed after %d attempts: %v", e.Symbol, e.Attempts, e.Err)
}

func (e *FetchExhaustedError) Unwrap() error {
	return e.Err
}

// ParseError reports a provider response that could not be decoded into
// domain records.
type ParseError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s response for %s could not be parsed: %v", e.Provider, e.Symbol, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
