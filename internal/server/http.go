package server

import (
	v1 "github.com/cinelog/movieapp/api/movie/v1"
	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"
	"github.com/cinelog/movieapp/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"golang.org/x/time/rate"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, auth *conf.Auth, movieSvc *service.MovieService, authSvc *service.AuthService, sessionUC *biz.SessionUseCase, logger log.Logger) *khttp.Server {
	var loginRate rate.Limit
	var loginBurst int
	if auth != nil {
		loginRate = rate.Limit(auth.LoginRate)
		loginBurst = auth.LoginBurst
	}

	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			LoginRateLimitMiddleware(loginRate, loginBurst),
			SessionMiddleware(sessionUC, service.CookieName(auth)),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, khttp.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, khttp.Address(c.Http.Addr))
		}
		if c.Http.Timeout.AsDuration() > 0 {
			opts = append(opts, khttp.Timeout(c.Http.Timeout.AsDuration()))
		}
	}
	srv := khttp.NewServer(opts...)
	v1.RegisterAuthServiceHTTPServer(srv, authSvc)
	v1.RegisterMovieServiceHTTPServer(srv, movieSvc)
	return srv
}
