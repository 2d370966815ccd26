package api

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// MsgInvalidBody is returned for bodies that are not a task object.
const MsgInvalidBody = "Invalid request body"

//go:embed task_input.schema.json
var taskInputSchemaJSON string

var taskInputSchema = jsonschema.MustCompileString("task_input.schema.json", taskInputSchemaJSON)

// decodeTaskInput parses body as a task input. Members other than title,
// description and status are ignored. A null description counts as absent;
// a null title or status is kept as an empty value so validation sees it.
func decodeTaskInput(body []byte) (domain.TaskInput, error) {
	var input domain.TaskInput

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return input, errors.NewValidationError(MsgInvalidBody, err)
	}
	if err := taskInputSchema.Validate(doc); err != nil {
		return input, errors.NewValidationError(MsgInvalidBody, err)
	}
	if err := json.Unmarshal(body, &input); err != nil {
		return input, errors.NewValidationError(MsgInvalidBody, err)
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		if v, present := obj["title"]; present && v == nil {
			input.Title = domain.StringPtr("")
		}
		if v, present := obj["status"]; present && v == nil {
			input.Status = domain.StringPtr("")
		}
	}
	return input, nil
}
