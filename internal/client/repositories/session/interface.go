// Package session persists the identity provider's issued session between
// process runs, standing in for the browser-local storage the hosted
// provider's SDK would otherwise manage.
package session

import (
	"context"

	"inkwell/internal/client/identity"
)

// Repository stores at most one session.
type Repository interface {
	// Load returns the persisted session, or nil when none is stored.
	Load(ctx context.Context) (*identity.Session, error)

	// Save replaces the persisted session atomically.
	Save(ctx context.Context, sess *identity.Session) error

	// Clear removes any persisted session. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
