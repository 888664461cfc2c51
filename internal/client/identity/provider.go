// Package identity wraps the hosted identity provider behind a small,
// result-returning interface. The provider issues opaque bearer tokens and
// owns credential verification entirely; this client never sees password
// hashes or token internals.
package identity

import (
	"context"

	"inkwell/internal/client/models"
)

// Session is the set of bearer tokens issued for a signed-in user.
type Session struct {
	Username     string
	IDToken      string
	AccessToken  string
	RefreshToken string
}

// Token is the view of a session handed to API callers.
type Token struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
}

// Token returns the session's tokens.
func (s *Session) Token() Token {
	return Token{IDToken: s.IDToken, AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}

// Provider defines the identity-provider operations the client consumes.
//
// All methods honor context cancellation. Failures are reported through the
// sentinel errors in this package where a distinct user-facing reaction
// exists, otherwise as provider errors wrapped with context.
type Provider interface {
	// SignIn authenticates with username/password and returns a fresh session.
	SignIn(ctx context.Context, username, password string) (*Session, error)

	// Refresh exchanges a refresh token for fresh id/access tokens. The
	// returned session keeps the given refresh token if the provider does
	// not rotate it.
	Refresh(ctx context.Context, username, refreshToken string) (*Session, error)

	// SignUp registers a new account. The account remains unconfirmed until
	// ConfirmSignUp succeeds.
	SignUp(ctx context.Context, email, password string) error

	// ConfirmSignUp submits the emailed confirmation code.
	ConfirmSignUp(ctx context.Context, username, code string) error

	// ResendConfirmationCode asks the provider to resend the code.
	ResendConfirmationCode(ctx context.Context, username string) error

	// FetchUser resolves the profile attributes for a valid access token.
	FetchUser(ctx context.Context, accessToken string) (*models.AuthUser, error)

	// SignOut invalidates the session server-side.
	SignOut(ctx context.Context, accessToken string) error
}
