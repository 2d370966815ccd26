package validation

import (
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		ve       *ValidationError
		expected string
	}{
		{"empty", NewValidationError(), "validation failed"},
		{"one rule", NewValidationError().Required("title", "Title is required"), "title: Title is required"},
		{"two rules", NewValidationError().Required("title", "").Invalid("status", "open", "Invalid status"),
			"title: title is required; status: Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ve.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationError_Required(t *testing.T) {
	ve := NewValidationError().Required("title", "")

	if len(ve.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(ve.Errors))
	}
	fe := ve.Errors[0]
	if fe.Field != "title" || fe.Type != ErrorTypeRequired || fe.Value != nil {
		t.Errorf("unexpected field error: %+v", fe)
	}
	if fe.Message != "title is required" {
		t.Errorf("default message = %q", fe.Message)
	}
}

func TestValidationError_Invalid(t *testing.T) {
	ve := NewValidationError().Invalid("status", "archived", MsgInvalidStatus)

	fe := ve.Errors[0]
	if fe.Type != ErrorTypeInvalidValue || fe.Value != "archived" || fe.Message != MsgInvalidStatus {
		t.Errorf("unexpected field error: %+v", fe)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		ve       *ValidationError
		expected string
	}{
		{"empty", NewValidationError(), "Input validation failed"},
		{"first rule wins", NewValidationError().Invalid("title", " ", MsgTitleEmpty).Invalid("status", "x", MsgInvalidStatus), MsgTitleEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ve.GetUserFriendlyMessage(); got != tt.expected {
				t.Errorf("GetUserFriendlyMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}
