package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEmotion    = errors.New("unknown emotion")
	ErrMissingCredential = errors.New("upstream credential is not configured")
	ErrUpstreamLLM       = errors.New("upstream LLM failure")
	ErrEmptyStory        = errors.New("upstream returned no story")
	ErrSessionBusy       = errors.New("a story is already being generated for this session")
	ErrPromptNotFound    = errors.New("prompt not found")
)

// MissingCredentialError names the configuration value that is absent.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Name)
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// UpstreamStatusError is returned when the inference API answers with a non-2xx status.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamLLM
}
