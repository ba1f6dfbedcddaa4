package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// MovieUseCase handles movie-related business logic
type MovieUseCase struct {
	repo MovieRepo
	log  *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(repo MovieRepo, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CoerceWatched normalizes the loosely typed watched flag sent by clients:
// only a JSON true or the string "true" count as watched.
func CoerceWatched(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case *bool:
		return value != nil && *value
	case string:
		return value == "true"
	default:
		return false
	}
}

// List returns the movies matching query. The result is never nil.
func (uc *MovieUseCase) List(ctx context.Context, query *MovieQuery) ([]*Movie, error) {
	if query == nil {
		query = &MovieQuery{}
	}
	movies, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		movies = []*Movie{}
	}
	return movies, nil
}

func (uc *MovieUseCase) ListAll(ctx context.Context) ([]*Movie, error) {
	return uc.List(ctx, &MovieQuery{})
}

func (uc *MovieUseCase) ListWatched(ctx context.Context) ([]*Movie, error) {
	watched := true
	return uc.List(ctx, &MovieQuery{Watched: &watched})
}

func (uc *MovieUseCase) ListNotWatched(ctx context.Context) ([]*Movie, error) {
	watched := false
	return uc.List(ctx, &MovieQuery{Watched: &watched})
}

// ListByRating sorts by rating descending; unrated movies come last.
func (uc *MovieUseCase) ListByRating(ctx context.Context) ([]*Movie, error) {
	return uc.List(ctx, &MovieQuery{SortByRating: true})
}

// Get retrieves a movie by its id
func (uc *MovieUseCase) Get(ctx context.Context, id string) (*Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMovieNotFound
	}
	movie, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", id, err)
	}
	return movie, nil
}

// Create validates the input and persists a new movie. The store assigns
// ID and CreatedAt.
func (uc *MovieUseCase) Create(ctx context.Context, in *MovieInput) (*Movie, error) {
	if in == nil {
		in = &MovieInput{}
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	movie := &Movie{
		Title:     strings.TrimSpace(*in.Title),
		Year:      in.Year,
		Genre:     in.Genre,
		Rating:    in.Rating,
		Watched:   CoerceWatched(in.Watched),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	created, err := uc.repo.Create(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	uc.log.Infof("created movie %s (%q)", created.ID, created.Title)
	return created, nil
}

type replaceFields struct {
	Title *string `validate:"omitnil,notblank"`
}

// Replace overwrites the supplied fields of an existing movie. Omitted
// fields keep their stored value; watched is always rewritten.
func (uc *MovieUseCase) Replace(ctx context.Context, id string, in *MovieInput) (*Movie, error) {
	if in == nil {
		in = &MovieInput{}
	}
	if err := validateStruct(&replaceFields{Title: in.Title}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrMovieNotFound
	}

	update := &MovieUpdate{
		Year:    in.Year,
		Genre:   in.Genre,
		Rating:  in.Rating,
		Watched: CoerceWatched(in.Watched),
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		update.Title = &title
	}

	movie, err := uc.repo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie %s: %w", id, err)
	}
	return movie, nil
}

// Remove deletes a movie and returns what was stored.
func (uc *MovieUseCase) Remove(ctx context.Context, id string) (*Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMovieNotFound
	}
	movie, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete movie %s: %w", id, err)
	}
	uc.log.Infof("deleted movie %s", movie.ID)
	return movie, nil
}
