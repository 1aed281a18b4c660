package store

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasklist.schema.json
var taskListSchemaJSON string

var taskListSchema = jsonschema.MustCompileString("tasklist.schema.json", taskListSchemaJSON)

// validateDocument checks a decoded JSON document (as produced by
// json.Unmarshal into an interface{}) against the task list schema.
func validateDocument(doc interface{}) error {
	err := taskListSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var details []string
	collectSchemaErrors(ve, &details)
	if len(details) == 0 {
		return fmt.Errorf("%w: %s", ErrMalformed, ve.Message)
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(details, "; "))
}

func collectSchemaErrors(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, out)
	}
}
