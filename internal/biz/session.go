package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/cinelog/movieapp/internal/conf"
)

// DefaultSessionTTL matches the one hour cookie lifetime of the login gate.
const DefaultSessionTTL = time.Hour

type loginFields struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SessionUseCase issues and checks login sessions.
type SessionUseCase struct {
	creds    CredentialChecker
	sessions SessionRepo
	ttl      time.Duration
	log      *log.Helper
}

// NewSessionUseCase creates a new SessionUseCase instance
func NewSessionUseCase(c *conf.Auth, creds CredentialChecker, sessions SessionRepo, logger log.Logger) *SessionUseCase {
	ttl := DefaultSessionTTL
	if c != nil && c.SessionTtl.AsDuration() > 0 {
		ttl = c.SessionTtl.AsDuration()
	}
	return &SessionUseCase{
		creds:    creds,
		sessions: sessions,
		ttl:      ttl,
		log:      log.NewHelper(logger),
	}
}

// TTL is the lifetime of newly issued sessions.
func (uc *SessionUseCase) TTL() time.Duration {
	return uc.ttl
}

// Login checks the credentials and stores a fresh session token.
func (uc *SessionUseCase) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := validateStruct(&loginFields{Username: username, Password: password}); err != nil {
		return nil, err
	}

	ok, err := uc.creds.Check(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}
	if !ok {
		uc.log.Warnf("rejected login for user %q", username)
		return nil, ErrUnauthorized
	}

	token := uuid.NewString()
	if err := uc.sessions.Save(ctx, token, uc.ttl); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(uc.ttl),
		TTL:       uc.ttl,
	}, nil
}

// Logout forgets token. Unknown or empty tokens are not an error.
func (uc *SessionUseCase) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authorized reports whether token belongs to a live session. Store errors
// deny access.
func (uc *SessionUseCase) Authorized(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	ok, err := uc.sessions.Exists(ctx, token)
	if err != nil {
		uc.log.Errorf("session lookup failed: %v", err)
		return false
	}
	return ok
}
