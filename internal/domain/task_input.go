package domain

// TaskInput carries the client writable fields of a task. A nil field was
// either omitted or sent as JSON null and is treated as absent.
type TaskInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IsEmpty reports whether no field is present.
func (in TaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil
}
