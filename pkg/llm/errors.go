package llm

import "fmt"

// GenerationFailure reports a backend call that failed or returned content
// that could not be used.
type GenerationFailure struct {
	Operation string
	Err       error
}

func (e *GenerationFailure) Error() (msg string) {
	msg = fmt.Sprintf("%s generation failed: %v", e.Operation, e.Err)
	return msg
}

func (e *GenerationFailure) Unwrap() (err error) {
	err = e.Err
	return err
}
