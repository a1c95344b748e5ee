package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("validation conflict")
	ErrPersistence = errors.New("persistence failure")
)

// Rule identifies which business rule a Violation broke.
type Rule string

const (
	RuleField             Rule = "field"
	RuleDuplicateISBN     Rule = "duplicate_isbn"
	RuleDuplicateName     Rule = "duplicate_name"
	RuleMissingAuthors    Rule = "missing_authors"
	RuleMissingCategories Rule = "missing_categories"
	RuleUnknownAuthor     Rule = "unknown_author"
	RuleUnknownCategory   Rule = "unknown_category"
	RuleUnknownCountry    Rule = "unknown_country"
	RuleUnknownBook       Rule = "unknown_book"
	RuleUnknownReviewer   Rule = "unknown_reviewer"
	RuleHasDependents     Rule = "has_dependents"
)

// Violation is one broken rule of a submitted command.
type Violation struct {
	Rule    Rule   `json:"rule"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Violations accumulates every rule a command breaks. An empty list means
// the command is approved.
type Violations []Violation

func (vs *Violations) Add(rule Rule, field, format string, args ...any) {
	*vs = append(*vs, Violation{Rule: rule, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (vs Violations) Approved() bool {
	return len(vs) == 0
}

func (vs Violations) Has(rule Rule) bool {
	for _, v := range vs {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Err returns a *ConflictError carrying the violations, or nil when approved.
func (vs Violations) Err() error {
	if vs.Approved() {
		return nil
	}
	return &ConflictError{Violations: vs}
}

// ConflictError reports a command rejected by business rules.
type ConflictError struct {
	Violations Violations
}

func (e *ConflictError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation conflict: " + strings.Join(msgs, "; ")
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceError reports a write the store rejected for reasons outside
// the business rules.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
