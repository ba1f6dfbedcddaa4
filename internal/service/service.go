package service

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"

	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewMovieService, NewAuthService)

// DefaultCookieName is used when auth.cookie_name is not configured.
const DefaultCookieName = "movieapp_session"

// CookieName returns the configured session cookie name.
func CookieName(c *conf.Auth) string {
	if c != nil && c.CookieName != "" {
		return c.CookieName
	}
	return DefaultCookieName
}

// SessionToken reads the session cookie from the HTTP request carried by
// ctx. It returns "" for non-HTTP transports or a missing cookie.
func SessionToken(ctx context.Context, cookieName string) string {
	tr, ok := transport.FromServerContext(ctx)
	if !ok {
		return ""
	}
	ht, ok := tr.(khttp.Transporter)
	if !ok {
		return ""
	}
	cookie, err := ht.Request().Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setCookie(ctx context.Context, cookie *http.Cookie) {
	if tr, ok := transport.FromServerContext(ctx); ok {
		tr.ReplyHeader().Set("Set-Cookie", cookie.String())
	}
}

// toStatus maps biz errors onto the HTTP error contract. Anything not
// recognised is logged and hidden behind a generic 500.
func toStatus(l *log.Helper, op string, err error) error {
	switch {
	case stderrors.Is(err, biz.ErrValidation):
		return errors.BadRequest("BAD_REQUEST", err.Error())
	case stderrors.Is(err, biz.ErrMovieNotFound):
		return errors.NotFound("MOVIE_NOT_FOUND", "movie not found")
	case stderrors.Is(err, biz.ErrUnauthorized):
		return errors.Unauthorized("UNAUTHORIZED", "invalid credentials")
	}
	l.Errorf("%s: %v", op, err)
	return errors.InternalServer("INTERNAL_ERROR", "internal server error")
}
