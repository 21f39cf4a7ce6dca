package auth

import (
	"context"

	"github.com/josemedina1/Papafactory/internal/models"
)

// Authenticator verifies operator credentials. The abstraction exists so the
// admin panel can later move from passwords to PIN pads or badge readers
// without touching the service layer.
type Authenticator interface {
	// Register creates a new operator account.
	Register(ctx context.Context, username, credential string) (*models.Operator, error)

	// Authenticate verifies the credentials and returns the operator.
	Authenticate(ctx context.Context, username, credential string) (*models.Operator, error)

	// ValidateCredential checks if a credential meets the implementation's
	// requirements before it is accepted.
	ValidateCredential(credential string) error
}
