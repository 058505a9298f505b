package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalServerError  = "internal server error"
	MessageFailedUploadFile     = "failed to upload file"
	MessageSuccessUploadFile    = "file uploaded successfully"

	// ErrNotFound and ErrInvalidArgument are the two failure kinds callers
	// branch on; every specific error below wraps one of them.
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrParseID        = fmt.Errorf("%w: id must be a positive integer", ErrInvalidArgument)
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrUserNotAllowed = errors.New("user not allowed")
)

// InvalidArgument wraps a free-form reason as an ErrInvalidArgument.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}

type (
	UploadFileResponse struct {
		URL  string `json:"url"`
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
)
