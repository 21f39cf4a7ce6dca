package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/josemedina1/Papafactory/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// OperatorStorage is the slice of persistence the authenticator needs.
type OperatorStorage interface {
	CreateOperator(ctx context.Context, op *models.Operator) error
	GetOperatorByUsername(ctx context.Context, username string) (*models.Operator, error)
}

// PasswordAuthenticator implements password-based operator login using bcrypt.
type PasswordAuthenticator struct {
	storage OperatorStorage
}

// NewPasswordAuthenticator creates a password-based authenticator.
func NewPasswordAuthenticator(storage OperatorStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// ValidateCredential checks the minimum password requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new operator with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.Operator, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	op := models.NewOperator(username, string(hash))
	if err := a.storage.CreateOperator(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}
	return op, nil
}

// Authenticate verifies the username and password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.Operator, error) {
	op, err := a.storage.GetOperatorByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return op, nil
}

// SeedDefault provisions the bootstrap operator when it does not exist yet,
// so a fresh install can reach the admin panel.
func SeedDefault(ctx context.Context, a Authenticator, storage OperatorStorage, username, password string) error {
	if _, err := storage.GetOperatorByUsername(ctx, username); err == nil {
		return nil
	}
	if _, err := a.Register(ctx, username, password); err != nil {
		return fmt.Errorf("failed to seed operator: %w", err)
	}
	slog.Info("Seeded bootstrap operator", "username", username)
	return nil
}
