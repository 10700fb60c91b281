package util

import "errors"

var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrEmailRegistered       = errors.New("a student with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrQuizNotFound          = errors.New("quiz not found")
	ErrResultNotFound        = errors.New("result not found")
	ErrVideoNotFound         = errors.New("video submission not found")
	ErrVideoAlreadySubmitted = errors.New("a video has already been submitted; only one submission is allowed per student")
	ErrInvalidVideoLink      = errors.New("invalid Google Drive link format")
)
