package storage

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDraftNotFound      = errors.New("draft not found")
)
