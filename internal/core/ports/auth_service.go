package ports

import "context"

// AuthService issues and verifies the operator session token. The token is
// the only piece of client-persisted state in the whole console.
type AuthService interface {
	// Login checks the operator credential and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, error)
	// Verify parses a session token and returns the subject it was issued to.
	Verify(token string) (string, error)
}
