package domain

import (
	"errors"
	"fmt"
)

// Stage names a step of the pipeline. Used both for error reporting and progress notifications.
type Stage string

const (
	StageDecode    = Stage("decode")
	StageModelLoad = Stage("model_load")
	StageCaption   = Stage("caption")
	StageStory     = Stage("story")
)

// Messages shown to the user by every frontend.
const (
	IdleMessage           = "Please upload a JPG, JPEG, or PNG image to get started."
	RejectedFormatMessage = "Unsupported file type. Please upload a JPG, JPEG, or PNG image."
)

// ErrNoCandidates a model call succeeded but returned nothing to pick from.
var ErrNoCandidates = errors.New("model returned no candidates")

// RejectedFormatError the uploaded file's extension is not in the allow-list. It's a user error: the user can
// re-upload another file.
type RejectedFormatError struct {
	// Extension the rejected extension, lower-cased; empty if the file name has no extension at all
	Extension string
}

func (e *RejectedFormatError) Error() string {
	if e.Extension == "" {
		return "rejected format: file name has no extension"
	}
	return fmt.Sprintf("rejected format: %q", e.Extension)
}

// ModelLoadError the models could not be constructed. It's an infrastructure error which isn't recoverable within
// the request and stays until the registry is reset.
type ModelLoadError struct {
	Cause error
}

func (e *ModelLoadError) Error() string {
	return "failed to load models: " + e.Cause.Error()
}

func (e *ModelLoadError) Unwrap() error {
	return e.Cause
}

// InferenceError decoding the image or running one of the models failed. Only the current request is affected.
type InferenceError struct {
	Stage Stage
	Cause error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Cause.Error())
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}
