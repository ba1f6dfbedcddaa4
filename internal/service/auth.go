package service

import (
	"context"
	"net/http"

	"github.com/go-kratos/kratos/v2/log"

	v1 "github.com/cinelog/movieapp/api/movie/v1"
	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"
)

// AuthService implements login and logout for the session gate.
type AuthService struct {
	sessionUC    *biz.SessionUseCase
	cookieName   string
	cookieSecure bool
	log          *log.Helper
}

// NewAuthService creates a new AuthService
func NewAuthService(c *conf.Auth, sessionUC *biz.SessionUseCase, logger log.Logger) *AuthService {
	s := &AuthService{
		sessionUC:  sessionUC,
		cookieName: CookieName(c),
		log:        log.NewHelper(logger),
	}
	if c != nil {
		s.cookieSecure = c.CookieSecure
	}
	return s
}

// Login checks the credentials and sets the session cookie.
func (s *AuthService) Login(ctx context.Context, req *v1.LoginRequest) (*v1.LoginReply, error) {
	session, err := s.sessionUC.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(s.log, "login", err)
	}
	setCookie(ctx, &http.Cookie{
		Name:     s.cookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return &v1.LoginReply{
		Message:   "login successful",
		ExpiresAt: session.ExpiresAt.UTC(),
	}, nil
}

// Logout drops the session and clears the cookie.
func (s *AuthService) Logout(ctx context.Context, _ *v1.LogoutRequest) (*v1.LogoutReply, error) {
	if err := s.sessionUC.Logout(ctx, SessionToken(ctx, s.cookieName)); err != nil {
		s.log.Errorf("logout: %v", err)
	}
	setCookie(ctx, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return &v1.LogoutReply{Message: "logout successful"}, nil
}
