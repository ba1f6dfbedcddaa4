package data

import (
	"context"
	"sort"
	"sync"

	"github.com/cinelog/movieapp/internal/biz"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// memoryMovieRepo keeps movies in process. It backs the "memory" driver
// used for local runs and tests; ids have the same shape as Mongo's.
type memoryMovieRepo struct {
	mu     sync.RWMutex
	movies map[string]*biz.Movie
}

func newMemoryMovieRepo() *memoryMovieRepo {
	return &memoryMovieRepo{movies: make(map[string]*biz.Movie)}
}

func cloneMovie(m *biz.Movie) *biz.Movie {
	c := *m
	if m.Year != nil {
		year := *m.Year
		c.Year = &year
	}
	if m.Genre != nil {
		genre := *m.Genre
		c.Genre = &genre
	}
	if m.Rating != nil {
		rating := *m.Rating
		c.Rating = &rating
	}
	return &c
}

func (r *memoryMovieRepo) List(_ context.Context, query *biz.MovieQuery) ([]*biz.Movie, error) {
	r.mu.RLock()
	movies := make([]*biz.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if query.Watched != nil && m.Watched != *query.Watched {
			continue
		}
		movies = append(movies, cloneMovie(m))
	}
	r.mu.RUnlock()

	if query.SortByRating {
		sort.SliceStable(movies, func(i, j int) bool {
			a, b := movies[i], movies[j]
			switch {
			case a.Rating == nil && b.Rating == nil:
			case a.Rating == nil:
				return false
			case b.Rating == nil:
				return true
			case *a.Rating != *b.Rating:
				return *a.Rating > *b.Rating
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})
		return movies, nil
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if !movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
			return movies[i].CreatedAt.Before(movies[j].CreatedAt)
		}
		return movies[i].ID < movies[j].ID
	})
	return movies, nil
}

func (r *memoryMovieRepo) Get(_ context.Context, id string) (*biz.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, biz.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (r *memoryMovieRepo) Create(_ context.Context, movie *biz.Movie) (*biz.Movie, error) {
	m := cloneMovie(movie)
	m.ID = bson.NewObjectID().Hex()

	r.mu.Lock()
	r.movies[m.ID] = m
	r.mu.Unlock()
	return cloneMovie(m), nil
}

func (r *memoryMovieRepo) Update(_ context.Context, id string, update *biz.MovieUpdate) (*biz.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, biz.ErrMovieNotFound
	}
	m.Watched = update.Watched
	if update.Title != nil {
		m.Title = *update.Title
	}
	if update.Year != nil {
		year := *update.Year
		m.Year = &year
	}
	if update.Genre != nil {
		genre := *update.Genre
		m.Genre = &genre
	}
	if update.Rating != nil {
		rating := *update.Rating
		m.Rating = &rating
	}
	return cloneMovie(m), nil
}

func (r *memoryMovieRepo) Delete(_ context.Context, id string) (*biz.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, biz.ErrMovieNotFound
	}
	delete(r.movies, id)
	return m, nil
}
