package validation

import (
	"taskboard/internal/domain"
)

// Messages reported for task input. They are shown to the user verbatim.
var (
	MsgTitleRequired = "Title is required and cannot be empty"
	MsgTitleEmpty    = "Title cannot be empty"
	MsgInvalidStatus = "Invalid status. Must be one of: " + domain.StatusList()
)

// TaskValidator provides validation for Task-related operations. Every
// method stops at the first failing rule so that a single message reaches
// the user; the title is checked before the status.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTaskForCreation validates input for a new task: the title must be
// present and non-blank. An empty status means the default; any other
// status must be known.
func (tv *TaskValidator) ValidateTaskForCreation(input domain.TaskInput) error {
	if input.Title == nil || !tv.validator.IsNonEmptyString(*input.Title) {
		return NewValidationError().Required("title", MsgTitleRequired)
	}

	if input.Status != nil && *input.Status != "" && !tv.validator.IsValidStatus(*input.Status) {
		return NewValidationError().Invalid("status", *input.Status, MsgInvalidStatus)
	}

	return nil
}

// ValidateTaskForUpdate validates a partial update. Absent fields are not
// checked.
func (tv *TaskValidator) ValidateTaskForUpdate(input domain.TaskInput) error {
	if input.Title != nil && !tv.validator.IsNonEmptyString(*input.Title) {
		return NewValidationError().Invalid("title", *input.Title, MsgTitleEmpty)
	}

	if input.Status != nil && !tv.validator.IsValidStatus(*input.Status) {
		return NewValidationError().Invalid("status", *input.Status, MsgInvalidStatus)
	}

	return nil
}
