package errors

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")

	ErrOperatorNotFound        = errors.New("operator not found")
	ErrOperatorDisabled        = errors.New("operator disabled")
	ErrInvalidOperatorPassword = errors.New("invalid username or password")

	ErrInvalidID         = errors.New("invalid id")
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrInvalidProperty   = errors.New("invalid asset property")
	ErrMalformedAmount   = errors.New("malformed decimal amount")
	ErrMissingUpload     = errors.New("upload file is required")
	ErrUnsupportedUpload = errors.New("unsupported upload type")
	ErrWagerRaceNotFound = errors.New("wager race not found")
)
