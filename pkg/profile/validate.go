package profile

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//nolint:gochecknoglobals // Schema constants
var requiredTopLevel = []string{"personal_info", "job_experience"}

//nolint:gochecknoglobals // Schema constants
var requiredPersonalFields = []string{"name", "email", "phone", "location"}

//nolint:gochecknoglobals // Schema constants
var requiredJobFields = []string{"id", "title", "company", "position", "start_date", "end_date", "duties"}

// ValidationError reports a profile that does not have the required structure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() (msg string) {
	msg = "invalid profile: " + e.Reason
	return msg
}

func invalid(format string, args ...interface{}) (err error) {
	err = &ValidationError{Reason: fmt.Sprintf(format, args...)}
	return err
}

// Validate checks the structure of a profile as it would be written to disk.
func Validate(p Profile) (err error) {
	var data []byte
	data, err = json.Marshal(p)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile")
		return err
	}

	err = ValidateJSON(data)
	return err
}

// ValidateJSON checks the structure of a serialized profile. Only shape is
// checked; dates, emails and other values are not inspected.
func ValidateJSON(data []byte) (err error) {
	if !gjson.ValidBytes(data) {
		err = invalid("not valid JSON")
		return err
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		err = invalid("top level must be an object")
		return err
	}

	for _, key := range requiredTopLevel {
		if !root.Get(key).Exists() {
			err = invalid("missing required key %q", key)
			return err
		}
	}

	personal := root.Get("personal_info")
	if !personal.IsObject() {
		err = invalid("personal_info must be an object")
		return err
	}

	for _, field := range requiredPersonalFields {
		if !personal.Get(field).Exists() {
			err = invalid("personal_info missing required field %q", field)
			return err
		}
	}

	jobs := root.Get("job_experience")
	if !jobs.IsArray() {
		err = invalid("job_experience must be a list")
		return err
	}

	for i, job := range jobs.Array() {
		err = validateJob(i, job)
		if err != nil {
			return err
		}
	}

	return err
}

func validateJob(index int, job gjson.Result) (err error) {
	if !job.IsObject() {
		err = invalid("job_experience[%d] must be an object", index)
		return err
	}

	for _, field := range requiredJobFields {
		if !job.Get(field).Exists() {
			err = invalid("job_experience[%d] missing required field %q", index, field)
			return err
		}
	}

	if !job.Get("duties").IsArray() {
		err = invalid("job_experience[%d].duties must be a list", index)
		return err
	}

	return err
}
