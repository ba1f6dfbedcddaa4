package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	v1 "github.com/cinelog/movieapp/api/movie/v1"
	"github.com/cinelog/movieapp/internal/biz"
)

// MovieService implements the MovieService API
type MovieService struct {
	movieUC *biz.MovieUseCase
	log     *log.Helper
}

// NewMovieService creates a new MovieService
func NewMovieService(movieUC *biz.MovieUseCase, logger log.Logger) *MovieService {
	return &MovieService{
		movieUC: movieUC,
		log:     log.NewHelper(logger),
	}
}

func (s *MovieService) ListMovies(ctx context.Context, _ *v1.ListMoviesRequest) (v1.MovieList, error) {
	return s.list(ctx, "list movies", s.movieUC.ListAll)
}

func (s *MovieService) ListWatchedMovies(ctx context.Context, _ *v1.ListMoviesRequest) (v1.MovieList, error) {
	return s.list(ctx, "list watched movies", s.movieUC.ListWatched)
}

func (s *MovieService) ListNotWatchedMovies(ctx context.Context, _ *v1.ListMoviesRequest) (v1.MovieList, error) {
	return s.list(ctx, "list not watched movies", s.movieUC.ListNotWatched)
}

func (s *MovieService) ListMoviesByRating(ctx context.Context, _ *v1.ListMoviesRequest) (v1.MovieList, error) {
	return s.list(ctx, "list movies by rating", s.movieUC.ListByRating)
}

func (s *MovieService) list(ctx context.Context, op string, fn func(context.Context) ([]*biz.Movie, error)) (v1.MovieList, error) {
	movies, err := fn(ctx)
	if err != nil {
		return nil, toStatus(s.log, op, err)
	}
	reply := make(v1.MovieList, 0, len(movies))
	for _, movie := range movies {
		reply = append(reply, movieToReply(movie))
	}
	return reply, nil
}

// GetMovie implements fetch by id
func (s *MovieService) GetMovie(ctx context.Context, req *v1.GetMovieRequest) (*v1.Movie, error) {
	movie, err := s.movieUC.Get(ctx, req.Id)
	if err != nil {
		return nil, toStatus(s.log, "get movie", err)
	}
	return movieToReply(movie), nil
}

// CreateMovie implements movie creation
func (s *MovieService) CreateMovie(ctx context.Context, req *v1.CreateMovieRequest) (*v1.Movie, error) {
	movie, err := s.movieUC.Create(ctx, &biz.MovieInput{
		Title:   req.Title,
		Year:    req.Year,
		Genre:   req.Genre,
		Rating:  req.Rating,
		Watched: req.Watched,
	})
	if err != nil {
		return nil, toStatus(s.log, "create movie", err)
	}
	return movieToReply(movie), nil
}

// UpdateMovie implements the in-place replace of a movie
func (s *MovieService) UpdateMovie(ctx context.Context, req *v1.UpdateMovieRequest) (*v1.Movie, error) {
	movie, err := s.movieUC.Replace(ctx, req.Id, &biz.MovieInput{
		Title:   req.Title,
		Year:    req.Year,
		Genre:   req.Genre,
		Rating:  req.Rating,
		Watched: req.Watched,
	})
	if err != nil {
		return nil, toStatus(s.log, "update movie", err)
	}
	return movieToReply(movie), nil
}

// DeleteMovie removes a movie and echoes it back
func (s *MovieService) DeleteMovie(ctx context.Context, req *v1.DeleteMovieRequest) (*v1.Movie, error) {
	movie, err := s.movieUC.Remove(ctx, req.Id)
	if err != nil {
		return nil, toStatus(s.log, "delete movie", err)
	}
	return movieToReply(movie), nil
}

// HealthCheck implements health check
func (s *MovieService) HealthCheck(ctx context.Context, req *v1.HealthCheckRequest) (*v1.HealthCheckReply, error) {
	return &v1.HealthCheckReply{
		Status: "ok",
	}, nil
}

func movieToReply(movie *biz.Movie) *v1.Movie {
	return &v1.Movie{
		Id:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		Genre:     movie.Genre,
		Watched:   movie.Watched,
		Rating:    movie.Rating,
		CreatedAt: movie.CreatedAt,
	}
}
