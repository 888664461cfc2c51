// Package services contains the application services of the journal client:
// the session service (who is signed in) and the journal service (the local
// mirror of the remote entry collection).
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/internal/client/identity"
	"inkwell/internal/client/models"
	"inkwell/internal/client/repositories/session"
	"inkwell/internal/logging"
)

// timeNow is a test seam for token expiry checks.
var timeNow = time.Now

// expirySkew refreshes tokens slightly before their actual expiry so a token
// does not expire mid-flight.
const expirySkew = 30 * time.Second

// State describes the session state machine: Unknown until the initial
// session check completes, then Authenticated or Unauthenticated. The only
// later transition is Authenticated -> Unauthenticated, on sign-out or
// session invalidation.
type State string

const (
	StateUnknown         State = "unknown"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// SessionService is the single source of truth for the current user.
//
// Contract:
//   - SignIn/SignUp/ConfirmSignUp/ResendConfirmationCode/SignOut mirror the
//     identity provider's account operations.
//   - GetToken returns the current bearer tokens, transparently refreshing
//     an expired access token through the provider.
//   - RefreshUser re-derives the current user from the persisted session;
//     it runs once at startup and may be called after mutations.
//   - Loading reports true only during the initial session check and while
//     SignIn/SignOut are in flight.
type SessionService interface {
	SignIn(ctx context.Context, username, password string) error
	SignUp(ctx context.Context, email, password string) error
	ConfirmSignUp(ctx context.Context, username, code string) error
	ResendConfirmationCode(ctx context.Context, username string) error
	SignOut(ctx context.Context) error
	GetToken(ctx context.Context) (identity.Token, error)
	RefreshUser(ctx context.Context) error
	CurrentUser() *models.AuthUser
	State() State
	Loading() bool
}

type sessionService struct {
	provider identity.Provider
	sessions session.Repository
	log      logging.Logger

	mu      sync.Mutex
	sess    *identity.Session
	user    *models.AuthUser
	state   State
	loading bool
}

// NewSessionService builds the session store. A nil provider means the
// identity configuration is absent: the service logs a warning and settles
// permanently into the unauthenticated state instead of failing, so the rest
// of the client stays usable.
func NewSessionService(provider identity.Provider, sessions session.Repository, log logging.Logger) SessionService {
	s := &sessionService{
		provider: provider,
		sessions: sessions,
		log:      log,
		state:    StateUnknown,
	}
	if provider == nil {
		s.log.Warn(context.Background(), "identity provider configuration is missing; authentication is disabled")
		s.state = StateUnauthenticated
	}
	return s
}

func (s *sessionService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sessionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *sessionService) CurrentUser() *models.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *sessionService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *sessionService) setAuthenticated(sess *identity.Session, user *models.AuthUser) {
	s.mu.Lock()
	s.sess = sess
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
}

func (s *sessionService) setUnauthenticated() {
	s.mu.Lock()
	s.sess = nil
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()
}

// RefreshUser re-derives the current user from the persisted session. A
// missing or unrecoverable session yields the unauthenticated state, never an
// error surfaced to the caller: absence of a session is a valid quiescent
// state at startup.
func (s *sessionService) RefreshUser(ctx context.Context) error {
	if s.provider == nil {
		s.setUnauthenticated()
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.restore(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to restore session", "error", err)
		s.discard(ctx)
		return nil
	}
	if sess == nil {
		s.setUnauthenticated()
		return nil
	}

	user, err := s.provider.FetchUser(ctx, sess.AccessToken)
	if err != nil {
		s.log.Warn(ctx, "failed to load user profile", "error", err)
		s.discard(ctx)
		return nil
	}

	s.setAuthenticated(sess, user)
	s.log.Info(ctx, "session restored", "username", user.Username)
	return nil
}

// restore loads the persisted session and refreshes its tokens when expired.
// Returns nil, nil when no session is stored.
func (s *sessionService) restore(ctx context.Context) (*identity.Session, error) {
	s.mu.Lock()
	sess := s.sess
	s.mu.Unlock()

	if sess == nil {
		var err error
		sess, err = s.sessions.Load(ctx)
		if err != nil {
			return nil, err
		}
		if sess == nil {
			return nil, nil
		}
	}

	if !tokenExpired(sess.AccessToken) {
		return sess, nil
	}

	if sess.RefreshToken == "" {
		return nil, identity.ErrNotAuthenticated
	}
	refreshed, err := s.provider.Refresh(ctx, sess.Username, sess.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing session: %w", err)
	}
	if err := s.sessions.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("persisting refreshed session: %w", err)
	}

	s.mu.Lock()
	if s.state == StateAuthenticated {
		s.sess = refreshed
	}
	s.mu.Unlock()

	return refreshed, nil
}

// discard drops local and persisted session state.
func (s *sessionService) discard(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	s.setUnauthenticated()
}

func (s *sessionService) SignIn(ctx context.Context, username, password string) error {
	if s.provider == nil {
		return identity.ErrConfigurationMissing
	}
	if username == "" || password == "" {
		return identity.ErrInvalidCredentials
	}

	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.provider.SignIn(ctx, username, password)
	if err != nil {
		return err
	}

	user, err := s.provider.FetchUser(ctx, sess.AccessToken)
	if err != nil {
		return fmt.Errorf("loading user profile: %w", err)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.setAuthenticated(sess, user)
	s.log.Info(ctx, "signed in", "username", user.Username)
	return nil
}

func (s *sessionService) SignUp(ctx context.Context, email, password string) error {
	if s.provider == nil {
		return identity.ErrConfigurationMissing
	}
	// Success leaves the session untouched: the account is unusable until
	// confirmed.
	return s.provider.SignUp(ctx, email, password)
}

func (s *sessionService) ConfirmSignUp(ctx context.Context, username, code string) error {
	if s.provider == nil {
		return identity.ErrConfigurationMissing
	}
	return s.provider.ConfirmSignUp(ctx, username, code)
}

func (s *sessionService) ResendConfirmationCode(ctx context.Context, username string) error {
	if s.provider == nil {
		return identity.ErrConfigurationMissing
	}
	return s.provider.ResendConfirmationCode(ctx, username)
}

// SignOut invalidates the provider session best-effort and always clears
// local state. It is idempotent: signing out while signed out is a no-op.
func (s *sessionService) SignOut(ctx context.Context) error {
	if s.provider == nil {
		s.setUnauthenticated()
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	sess := s.sess
	s.mu.Unlock()

	if sess != nil && sess.AccessToken != "" {
		if err := s.provider.SignOut(ctx, sess.AccessToken); err != nil {
			s.log.Warn(ctx, "provider sign-out failed", "error", err)
		}
	}

	s.discard(ctx)
	s.log.Info(ctx, "signed out")
	return nil
}

// GetToken returns the session's bearer tokens, refreshing them through the
// provider when the cached access token is expired.
func (s *sessionService) GetToken(ctx context.Context) (identity.Token, error) {
	if s.provider == nil {
		return identity.Token{}, identity.ErrConfigurationMissing
	}

	sess, err := s.restore(ctx)
	if err != nil {
		if errors.Is(err, identity.ErrNotAuthenticated) {
			return identity.Token{}, identity.ErrNotAuthenticated
		}
		return identity.Token{}, err
	}
	if sess == nil {
		return identity.Token{}, identity.ErrNotAuthenticated
	}

	return sess.Token(), nil
}

// tokenExpired reports whether a JWT's exp claim is in the past (with skew).
// The signature is not verified here: validation is the API's job, this is
// only a local refresh heuristic. Unparseable tokens count as expired.
func tokenExpired(raw string) bool {
	if raw == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !timeNow().Add(expirySkew).Before(exp.Time)
}
