package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed query, limit, or filter tree.
	// Reported immediately to the caller; never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRecipeNotFound signals a missing recipe.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrRetrievalUnavailable signals that the recipe store could not be
	// reached. Retryable by the caller; the pipeline itself never retries.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrRetrievalTimeout signals that the recipe store did not respond
	// within the caller's budget. Retryable by the caller.
	ErrRetrievalTimeout = errors.New("retrieval timeout")
	// ErrEncodingFailure signals that query text could not be embedded.
	// Not retryable by the pipeline.
	ErrEncodingFailure = errors.New("encoding failure")

	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)

// Retryable reports whether the caller may retry the operation that
// produced err. Only retrieval-side failures qualify.
func Retryable(err error) bool {
	return errors.Is(err, ErrRetrievalUnavailable) || errors.Is(err, ErrRetrievalTimeout)
}
