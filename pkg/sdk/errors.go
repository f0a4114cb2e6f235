package recipedex

import "github.com/forkful-labs/recipedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument      = domain.ErrInvalidArgument
	ErrRecipeNotFound       = domain.ErrRecipeNotFound
	ErrVectorDimMismatch    = domain.ErrVectorDimMismatch
	ErrEncodingFailure      = domain.ErrEncodingFailure
	ErrRetrievalUnavailable = domain.ErrRetrievalUnavailable
	ErrRetrievalTimeout     = domain.ErrRetrievalTimeout
)

// Retryable reports whether an error is transient and worth retrying.
func Retryable(err error) bool {
	return domain.Retryable(err)
}
