package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"golang.org/x/time/rate"

	v1 "github.com/cinelog/movieapp/api/movie/v1"
	"github.com/cinelog/movieapp/internal/service"
)

// Authorizer is the capability check behind the session gate.
type Authorizer interface {
	Authorized(ctx context.Context, token string) bool
}

// publicOperations skip the session gate.
var publicOperations = map[string]bool{
	v1.OperationAuthServiceLogin:        true,
	v1.OperationAuthServiceLogout:       true,
	v1.OperationMovieServiceHealthCheck: true,
}

// SessionMiddleware rejects every non public operation that does not carry
// a live session cookie.
func SessionMiddleware(auth Authorizer, cookieName string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			// Get transport info
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, errors.Unauthorized("UNAUTHORIZED", "missing transport info")
			}
			if tr.Kind() != transport.KindHTTP || publicOperations[tr.Operation()] {
				return handler(ctx, req)
			}

			if !auth.Authorized(ctx, service.SessionToken(ctx, cookieName)) {
				return nil, errors.Unauthorized("UNAUTHORIZED", "not authorized")
			}
			return handler(ctx, req)
		}
	}
}

const (
	defaultLoginRate  = rate.Limit(1)
	defaultLoginBurst = 5
	limiterIdleTTL    = 3 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter hands out one token bucket per client address.
type loginLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLoginLimiter(limit rate.Limit, burst int) *loginLimiter {
	if limit <= 0 {
		limit = defaultLoginRate
	}
	if burst <= 0 {
		burst = defaultLoginBurst
	}
	return &loginLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// Idle clients are dropped at most once per limiterIdleTTL.
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for addr, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// LoginRateLimitMiddleware throttles login attempts per client IP.
func LoginRateLimitMiddleware(limit rate.Limit, burst int) middleware.Middleware {
	limiter := newLoginLimiter(limit, burst)
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok || tr.Operation() != v1.OperationAuthServiceLogin {
				return handler(ctx, req)
			}
			ht, ok := tr.(khttp.Transporter)
			if !ok {
				return handler(ctx, req)
			}
			if !limiter.allow(clientIP(ht.Request().RemoteAddr)) {
				return nil, errors.New(429, "TOO_MANY_REQUESTS", "too many login attempts")
			}
			return handler(ctx, req)
		}
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
