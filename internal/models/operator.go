package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a till operator account. Only operators may use the admin
// panel routes; the ordering surface itself is unauthenticated on purpose,
// the kiosk runs on a single locked-down till.
type Operator struct {
	// ID is the unique identifier for the operator (UUID format).
	ID string

	// Username is the login name, unique.
	Username string

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// NewOperator creates an operator with a fresh ID.
func NewOperator(username, passwordHash string) *Operator {
	return &Operator{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}
