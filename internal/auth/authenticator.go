package auth

import (
	"context"

	"github.com/mmynk/grindtracker/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account. All three fields are required and
	// neither the username nor the email may already be taken.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate verifies the credential of the user identified by login,
	// which may be either the username or the email.
	Authenticate(ctx context.Context, login, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error

	// User returns the account behind an already resolved identity.
	User(ctx context.Context, userID string) (*models.User, error)
}
