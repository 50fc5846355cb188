package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/grindtracker/internal/storage"
)

var (
	// ErrNotFound means the record is absent or owned by someone else.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated means no valid identity was resolved for the caller.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStoreFailure wraps any persistence error. Its detail is for logs only.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError lists the input fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

// classify turns a store error into the core taxonomy.
func classify(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return storeFailure(op, err)
}
