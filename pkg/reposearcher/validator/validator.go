// Package validator checks a value against an ordered chain of rules.
//
// Rules run in order and the first failure wins: later rules are not
// evaluated, so a rule may assume every rule before it passed.
package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single check. Message is reported when Check returns false.
type Rule struct {
	Message string
	Check   func(value string) bool
}

// ValidationError reports the first rule a value failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator is an ordered rule chain.
type Validator struct {
	rules []Rule
}

// New creates a Validator that runs rules in the given order.
func New(rules ...Rule) *Validator {
	return &Validator{rules: rules}
}

// With returns a copy of v with more rules appended.
func (v *Validator) With(rules ...Rule) *Validator {
	out := make([]Rule, 0, len(v.rules)+len(rules))
	out = append(out, v.rules...)
	out = append(out, rules...)
	return &Validator{rules: out}
}

// Validate returns nil when value passes every rule, otherwise a
// *ValidationError carrying the first failing rule's message.
func (v *Validator) Validate(value string) error {
	for _, r := range v.rules {
		if !r.Check(value) {
			return &ValidationError{Message: r.Message}
		}
	}
	return nil
}

// Result is the outcome of a validation as the login screen shows it.
type Result struct {
	Valid   bool
	Message string
}

// Check runs Validate and folds the outcome into a Result.
func (v *Validator) Check(value string) Result {
	if err := v.Validate(value); err != nil {
		return Result{Message: err.Error()}
	}
	return Result{Valid: true}
}

// MinLength passes values of at least n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			return utf8.RuneCountInString(value) >= n
		},
	}
}

// HasUpperAndLower passes values that contain at least one upper case and one
// lower case letter.
func HasUpperAndLower(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			return strings.IndexFunc(value, unicode.IsUpper) >= 0 &&
				strings.IndexFunc(value, unicode.IsLower) >= 0
		},
	}
}

// NotBlank passes values with at least one non-space character.
func NotBlank(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}
