package auth

import "context"

// Authenticator defines the interface for admin authentication implementations.
// This abstraction allows swapping between different auth methods (passkey, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the admin credential.
	// Returns ErrInvalidPasskey if it does not match.
	Authenticate(ctx context.Context, credential string) error
}
