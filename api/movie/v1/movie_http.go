package v1

import (
	context "context"

	http "github.com/go-kratos/kratos/v2/transport/http"
)

const OperationMovieServiceHealthCheck = "/api.movie.v1.MovieService/HealthCheck"
const OperationMovieServiceListMovies = "/api.movie.v1.MovieService/ListMovies"
const OperationMovieServiceListWatchedMovies = "/api.movie.v1.MovieService/ListWatchedMovies"
const OperationMovieServiceListNotWatchedMovies = "/api.movie.v1.MovieService/ListNotWatchedMovies"
const OperationMovieServiceListMoviesByRating = "/api.movie.v1.MovieService/ListMoviesByRating"
const OperationMovieServiceGetMovie = "/api.movie.v1.MovieService/GetMovie"
const OperationMovieServiceCreateMovie = "/api.movie.v1.MovieService/CreateMovie"
const OperationMovieServiceUpdateMovie = "/api.movie.v1.MovieService/UpdateMovie"
const OperationMovieServiceDeleteMovie = "/api.movie.v1.MovieService/DeleteMovie"
const OperationAuthServiceLogin = "/api.movie.v1.AuthService/Login"
const OperationAuthServiceLogout = "/api.movie.v1.AuthService/Logout"

type MovieServiceHTTPServer interface {
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckReply, error)
	ListMovies(context.Context, *ListMoviesRequest) (MovieList, error)
	ListWatchedMovies(context.Context, *ListMoviesRequest) (MovieList, error)
	ListNotWatchedMovies(context.Context, *ListMoviesRequest) (MovieList, error)
	ListMoviesByRating(context.Context, *ListMoviesRequest) (MovieList, error)
	GetMovie(context.Context, *GetMovieRequest) (*Movie, error)
	CreateMovie(context.Context, *CreateMovieRequest) (*Movie, error)
	UpdateMovie(context.Context, *UpdateMovieRequest) (*Movie, error)
	DeleteMovie(context.Context, *DeleteMovieRequest) (*Movie, error)
}

// RegisterMovieServiceHTTPServer mounts the movie routes. The fixed
// /movies/* paths must be registered before /movies/{id}, otherwise the
// router captures "watched", "notwatched" and "sorted" as ids.
func RegisterMovieServiceHTTPServer(s *http.Server, srv MovieServiceHTTPServer) {
	r := s.Route("/")
	r.GET("/healthz", _MovieService_HealthCheck0_HTTP_Handler(srv))
	r.GET("/movies", _MovieService_ListMovies0_HTTP_Handler(OperationMovieServiceListMovies, srv.ListMovies))
	r.GET("/movies/watched", _MovieService_ListMovies0_HTTP_Handler(OperationMovieServiceListWatchedMovies, srv.ListWatchedMovies))
	r.GET("/movies/notwatched", _MovieService_ListMovies0_HTTP_Handler(OperationMovieServiceListNotWatchedMovies, srv.ListNotWatchedMovies))
	r.GET("/movies/sorted", _MovieService_ListMovies0_HTTP_Handler(OperationMovieServiceListMoviesByRating, srv.ListMoviesByRating))
	r.GET("/movies/{id}", _MovieService_GetMovie0_HTTP_Handler(srv))
	r.POST("/movies", _MovieService_CreateMovie0_HTTP_Handler(srv))
	r.PUT("/movies/{id}", _MovieService_UpdateMovie0_HTTP_Handler(srv))
	r.DELETE("/movies/{id}", _MovieService_DeleteMovie0_HTTP_Handler(srv))
}

func _MovieService_HealthCheck0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in HealthCheckRequest
		http.SetOperation(ctx, OperationMovieServiceHealthCheck)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.HealthCheck(ctx, req.(*HealthCheckRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*HealthCheckReply)
		return ctx.Result(200, reply)
	}
}

func _MovieService_ListMovies0_HTTP_Handler(operation string, list func(context.Context, *ListMoviesRequest) (MovieList, error)) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListMoviesRequest
		http.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return list(ctx, req.(*ListMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(MovieList)
		if reply == nil {
			reply = MovieList{}
		}
		return ctx.Result(200, reply)
	}
}

func _MovieService_GetMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetMovieRequest
		in.Id = ctx.Vars().Get("id")
		http.SetOperation(ctx, OperationMovieServiceGetMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetMovie(ctx, req.(*GetMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Movie)
		return ctx.Result(200, reply)
	}
}

// Request bodies are decoded inside the middleware chain, after the session
// gate and login throttle have run.
func _MovieService_CreateMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateMovieRequest
		http.SetOperation(ctx, OperationMovieServiceCreateMovie)
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			if err := ctx.Bind(req); err != nil {
				return nil, err
			}
			return srv.CreateMovie(c, req.(*CreateMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Movie)
		return ctx.Result(201, reply)
	}
}

func _MovieService_UpdateMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UpdateMovieRequest
		in.Id = ctx.Vars().Get("id")
		http.SetOperation(ctx, OperationMovieServiceUpdateMovie)
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			r := req.(*UpdateMovieRequest)
			if err := ctx.Bind(r); err != nil {
				return nil, err
			}
			r.Id = ctx.Vars().Get("id")
			return srv.UpdateMovie(c, r)
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Movie)
		return ctx.Result(200, reply)
	}
}

func _MovieService_DeleteMovie0_HTTP_Handler(srv MovieServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteMovieRequest
		in.Id = ctx.Vars().Get("id")
		http.SetOperation(ctx, OperationMovieServiceDeleteMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteMovie(ctx, req.(*DeleteMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Movie)
		return ctx.Result(200, reply)
	}
}

type AuthServiceHTTPServer interface {
	Login(context.Context, *LoginRequest) (*LoginReply, error)
	Logout(context.Context, *LogoutRequest) (*LogoutReply, error)
}

func RegisterAuthServiceHTTPServer(s *http.Server, srv AuthServiceHTTPServer) {
	r := s.Route("/")
	r.POST("/login", _AuthService_Login0_HTTP_Handler(srv))
	r.POST("/logout", _AuthService_Logout0_HTTP_Handler(srv))
}

func _AuthService_Login0_HTTP_Handler(srv AuthServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LoginRequest
		http.SetOperation(ctx, OperationAuthServiceLogin)
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			if err := ctx.Bind(req); err != nil {
				return nil, err
			}
			return srv.Login(c, req.(*LoginRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LoginReply)
		return ctx.Result(200, reply)
	}
}

func _AuthService_Logout0_HTTP_Handler(srv AuthServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LogoutRequest
		http.SetOperation(ctx, OperationAuthServiceLogout)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Logout(ctx, req.(*LogoutRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LogoutReply)
		return ctx.Result(200, reply)
	}
}
