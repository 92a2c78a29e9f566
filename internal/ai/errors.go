package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the provider credentials are absent.
	ErrNotConfigured = errors.New("ai service not configured")
	// ErrEmptyContent rejects blank dream text before any model is called.
	ErrEmptyContent = errors.New("dream content is required")
	// ErrMalformedResponse means a model answer could not be read as the requested JSON.
	ErrMalformedResponse = errors.New("malformed model response")
)

// UpstreamError is a non-2xx answer from a model provider.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
}

// AnalysisError fails a whole dream analysis; no partial result accompanies it.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return "dream analysis failed: " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// GenerationError fails NFT generation at the named step.
type GenerationError struct {
	Step string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("nft generation failed at %s: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
