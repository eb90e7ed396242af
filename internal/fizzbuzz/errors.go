package fizzbuzz

import (
	"errors"
	"fmt"
)

// Errors returned by fizzbuzz operations.
var (
	// ErrUnknownStrategy indicates no strategy is registered under a name.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidJSON indicates a document is not a fizzbuzz JSON array.
	ErrInvalidJSON = errors.New("invalid fizzbuzz json")
)

// MismatchError reports the first position where a sequence differs from
// the canonical one.
type MismatchError struct {
	// Index is the 0-based position of the mismatch.
	Index int
	// Got is the value found at Index.
	Got Value
	// Want is the canonical value for Index+1.
	Want Value
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch at position %d: got %s, want %s", e.Index+1, e.Got, e.Want)
}
