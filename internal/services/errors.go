package services

import "errors"

// Expected user-facing outcomes. The chat layer maps these to plain-text
// replies; they are never logged as system faults.
var (
	ErrNotRegistered       = errors.New("not part of a team")
	ErrSubmissionsDisabled = errors.New("submissions are disabled")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrEmptyInput          = errors.New("empty input")
)
