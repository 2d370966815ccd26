package validation

import (
	"testing"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Non-empty", "hello", true},
		{"Surrounded by spaces", "  hello  ", true},
		{"Empty", "", false},
		{"Spaces only", "   ", false},
		{"Tabs and newlines", "\t\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := v.IsNonEmptyString(tt.input); result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStatus(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"todo", true},
		{"in_progress", true},
		{"done", true},
		{"", false},
		{"TODO", false},
		{" done", false},
		{"in-progress", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := v.IsValidStatus(tt.input); result != tt.expected {
				t.Errorf("IsValidStatus(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
