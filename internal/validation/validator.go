package validation

import (
	"strings"

	"taskboard/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStatus checks if s names one of the task statuses. Matching is exact:
// case and surrounding whitespace matter.
func (v *Validator) IsValidStatus(s string) bool {
	return domain.Status(s).IsValid()
}
