package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ledger.ErrUnauthenticated)
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUserExists         = errors.New("username or email already exists")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, email, credential string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if credential == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &ledger.ValidationError{Fields: missing}
	}

	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	exists, err := a.storage.UserExists(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("%w: check user: %w", ledger.ErrStoreFailure, err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, email, string(hashedPassword))

	// The unique constraints catch a concurrent registration that slipped past UserExists.
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: create user: %w", ledger.ErrStoreFailure, err)
	}

	return user, nil
}

// Authenticate verifies the login and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, login, credential string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || credential == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.storage.GetUserByLogin(ctx, login)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %w", ledger.ErrStoreFailure, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// User returns the account with the given ID. A token for a user that no
// longer exists is treated as unauthenticated.
func (a *PasswordAuthenticator) User(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ledger.ErrUnauthenticated
	}
	user, err := a.storage.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ledger.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %w", ledger.ErrStoreFailure, err)
	}
	return user, nil
}
