// ABOUTME: Sentinel errors for feedback generation.
// ABOUTME: Callers match them with errors.Is to decide between warning and fallback.
package feedback

import "errors"

var (
	// ErrUnavailable indicates the Ollama server is unreachable.
	ErrUnavailable = errors.New("feedback generator unavailable")

	// ErrTimeout indicates generation exceeded the configured timeout.
	ErrTimeout = errors.New("feedback generation timed out")

	// ErrRetryExhausted indicates all retry attempts failed.
	ErrRetryExhausted = errors.New("feedback retry attempts exhausted")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("feedback generator returned no text")
)
