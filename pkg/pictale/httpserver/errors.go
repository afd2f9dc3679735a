package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

const (
	MessageIdle           = domain.IdleMessage
	MessageRejectedFormat = domain.RejectedFormatMessage
	MessageMissingFile    = "Please choose an image to upload."
	MessageDecodeFailed   = "The file could not be read as an image. Please upload another one."
	MessageModelLoad      = "The models are unavailable right now. Please try again later or contact the administrator."
	MessageSessionBusy    = "A story is already being written for you. Please wait until it's done."
	MessageInternal       = "Something went wrong. Please try again."
)

// userError what a frontend shows when an upload isn't processed.
type userError struct {
	Status  int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"error"`
}

var errMissingFile = errors.New("missing image file")

func toUserError(err error) userError {
	var rejectedFormatErr *domain.RejectedFormatError
	var modelLoadErr *domain.ModelLoadError
	var inferenceErr *domain.InferenceError
	switch {
	case errors.Is(err, errMissingFile):
		return userError{Status: http.StatusBadRequest, Kind: "missing_file", Message: MessageMissingFile}
	case errors.Is(err, api.ErrSessionBusy):
		return userError{Status: http.StatusConflict, Kind: "session_busy", Message: MessageSessionBusy}
	case errors.As(err, &rejectedFormatErr):
		return userError{Status: http.StatusBadRequest, Kind: "rejected_format", Message: MessageRejectedFormat}
	case errors.As(err, &modelLoadErr):
		return userError{Status: http.StatusServiceUnavailable, Kind: "model_load_error", Message: MessageModelLoad}
	case errors.As(err, &inferenceErr) && inferenceErr.Stage == domain.StageDecode:
		return userError{Status: http.StatusUnprocessableEntity, Kind: "inference_error", Message: MessageDecodeFailed}
	case errors.As(err, &inferenceErr):
		return userError{
			Status:  http.StatusBadGateway,
			Kind:    "inference_error",
			Message: fmt.Sprintf("Generating the %s failed. Please try another upload.", inferenceErr.Stage),
		}
	default:
		return userError{Status: http.StatusInternalServerError, Kind: "internal", Message: MessageInternal}
	}
}
