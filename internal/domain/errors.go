package domain

import "errors"

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrNoResponses   = errors.New("no responses found for this poll")
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrEmptyAnswer   = errors.New("answer must not be empty")
)
