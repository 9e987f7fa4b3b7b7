// Package taxerror defines the typed errors returned by the tax engine and its collaborators.
package taxerror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching across the typed errors below.
var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown tax category")
	ErrInvalidRules    = errors.New("invalid tax rules")
)

// InvalidAmountError reports an amount that is missing, negative, non-numeric or non-finite.
type InvalidAmountError struct {
	Value  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid amount: %s", e.Reason)
	}
	return fmt.Sprintf("invalid amount '%s': %s", e.Value, e.Reason)
}

func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}

// UnknownCategoryError reports a tax category outside income, business and vat.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown tax category '%s' (expected income, business or vat)", e.Value)
}

func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// UnknownPeriodError reports a reporting period other than annual or monthly.
type UnknownPeriodError struct {
	Value string
}

func (e *UnknownPeriodError) Error() string {
	return fmt.Sprintf("unknown period '%s' (expected annual or monthly)", e.Value)
}

// InvalidRateError reports a flat or marginal rate outside [0, 1].
type InvalidRateError struct {
	Name  string
	Value string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid %s rate %s: must be between 0 and 1", e.Name, e.Value)
}

func (e *InvalidRateError) Is(target error) bool {
	return target == ErrInvalidRules
}

// InvalidBracketError reports a bracket table that breaks ordering or contiguity.
type InvalidBracketError struct {
	Index  int
	Reason string
}

func (e *InvalidBracketError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid bracket table: %s", e.Reason)
	}
	return fmt.Sprintf("invalid bracket %d: %s", e.Index, e.Reason)
}

func (e *InvalidBracketError) Is(target error) bool {
	return target == ErrInvalidRules
}

// RuleFileError represents a failure to load or save a rule-set file.
type RuleFileError struct {
	Path string
	Err  error
}

func (e *RuleFileError) Error() string {
	return fmt.Sprintf("rule file '%s': %v", e.Path, e.Err)
}

func (e *RuleFileError) Unwrap() error {
	return e.Err
}
