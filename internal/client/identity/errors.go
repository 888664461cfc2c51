package identity

import "errors"

// Sentinel errors for the identity-provider boundary. Callers match them
// with errors.Is.
var (
	// ErrInvalidCredentials covers rejected sign-ins and unknown identifiers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNewPasswordRequired is returned when the provider demands a password
	// change before the account can sign in; the caller must present a
	// password-reset flow.
	ErrNewPasswordRequired = errors.New("new password required")

	// ErrUserNotConfirmed is returned when the account exists but has not
	// completed confirmation.
	ErrUserNotConfirmed = errors.New("account not confirmed")

	// ErrInvalidCode is returned for a wrong confirmation code.
	ErrInvalidCode = errors.New("invalid confirmation code")

	// ErrCodeExpired is returned for an expired confirmation code.
	ErrCodeExpired = errors.New("confirmation code expired")

	// ErrPasswordPolicy is returned when a sign-up password fails the
	// provider's password policy.
	ErrPasswordPolicy = errors.New("password does not meet policy")

	// ErrAccountExists is returned when signing up with an already
	// registered identifier.
	ErrAccountExists = errors.New("account already exists")

	// ErrNotAuthenticated is returned when an operation requires a valid
	// session and none exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrConfigurationMissing is returned when the identity provider is not
	// configured; the client runs in a degraded, permanently
	// unauthenticated state.
	ErrConfigurationMissing = errors.New("identity provider configuration missing")
)
