package data

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/crypto/bcrypt"
)

// credentialStore checks logins against the single account from config.
// A bcrypt PasswordHash wins over a plain Password.
type credentialStore struct {
	username string
	password string
	hash     []byte
}

// NewCredentialStore creates the configured credential checker.
func NewCredentialStore(c *conf.Auth, logger log.Logger) (biz.CredentialChecker, error) {
	if c == nil || c.Username == "" {
		return nil, errors.New("auth.username is required")
	}
	store := &credentialStore{username: c.Username}
	switch {
	case c.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(c.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid auth.password_hash: %w", err)
		}
		store.hash = []byte(c.PasswordHash)
	case c.Password != "":
		log.NewHelper(logger).Warn("auth.password is stored in plain text, prefer auth.password_hash")
		store.password = c.Password
	default:
		return nil, errors.New("auth.password or auth.password_hash is required")
	}
	return store, nil
}

func (s *credentialStore) Check(_ context.Context, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if s.hash != nil {
		err := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
		switch {
		case err == nil:
			return userOK, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("failed to compare password hash: %w", err)
		}
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK, nil
}
