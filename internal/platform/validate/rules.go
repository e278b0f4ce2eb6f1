// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// # Rule Errors

// InvalidCharactersError lists the characters of a username that fall outside
// the allowed set, each once, in order of first appearance.
type InvalidCharactersError struct {
	Chars string
}

func (e *InvalidCharactersError) Error() string {
	return fmt.Sprintf("Invalid characters in username: %s", e.Chars)
}

// ReservedNameError reports a username that is reserved by the API.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("Username %q is reserved", e.Name)
}

// YearInFutureError reports a release year after the current calendar year.
type YearInFutureError struct {
	Year        int
	CurrentYear int
}

func (e *YearInFutureError) Error() string {
	return fmt.Sprintf("Year %d is after the current year %d", e.Year, e.CurrentYear)
}

// OutOfRangeError reports a score outside the configured bounds.
type OutOfRangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("Score %d must be between %d and %d", e.Value, e.Min, e.Max)
}

// # Rules

// isUsernameRune reports membership in [A-Za-z0-9_.@+-].
func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_.@+-", r)
}

// Username fails with [*InvalidCharactersError] when value contains anything
// outside [A-Za-z0-9_.@+-].
func Username(value string) error {
	var offending []rune
	for _, r := range value {
		if !isUsernameRune(r) && !slices.Contains(offending, r) {
			offending = append(offending, r)
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return &InvalidCharactersError{Chars: string(offending)}
}

// NotReserved fails with [*ReservedNameError] when value exactly matches a reserved name.
func NotReserved(value string, reserved []string) error {
	if slices.Contains(reserved, value) {
		return &ReservedNameError{Name: value}
	}
	return nil
}

// Year fails with [*YearInFutureError] when year is after the calendar year of now.
// Callers pass the clock reading taken at validation time.
func Year(year int, now time.Time) error {
	if current := now.Year(); year > current {
		return &YearInFutureError{Year: year, CurrentYear: current}
	}
	return nil
}

// ScoreBounds is the inclusive range a review score must fall in.
type ScoreBounds struct {
	Min int
	Max int
}

// Score fails with [*OutOfRangeError] when value is outside bounds (inclusive).
func Score(value int, bounds ScoreBounds) error {
	if value < bounds.Min || value > bounds.Max {
		return &OutOfRangeError{Value: value, Min: bounds.Min, Max: bounds.Max}
	}
	return nil
}
