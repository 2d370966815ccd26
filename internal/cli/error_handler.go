package cli

import (
	stderrors "errors"
	"fmt"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/errors"
	"taskboard/internal/validation"
)

// ErrorHandler turns command errors into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages prefixed with the operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return stderrors.New(eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var cfgErr *config.ConfigError
	if stderrors.As(err, &cfgErr) {
		return "invalid configuration: " + cfgErr.Error()
	}

	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Message
	}

	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	return err.Error()
}
