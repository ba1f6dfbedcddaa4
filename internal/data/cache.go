package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cinelog/movieapp/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const movieCacheTTL = 15 * time.Minute

// cachedMovieRepo puts a Redis cache in front of single movie lookups.
// Lists always go to the store.
//
// Get fills a missing entry with SETNX, Update overwrites the entry with
// the stored result and Delete drops it. A Get that read a row before a
// concurrent Update therefore cannot replace the newer cached value. A Get
// racing a Delete can still cache the removed movie until the TTL expires.
type cachedMovieRepo struct {
	biz.MovieRepo
	rdb *redis.Client
	log *log.Helper
}

func newCachedMovieRepo(repo biz.MovieRepo, rdb *redis.Client, l *log.Helper) *cachedMovieRepo {
	return &cachedMovieRepo{MovieRepo: repo, rdb: rdb, log: l}
}

func movieCacheKey(id string) string {
	return fmt.Sprintf("movie:%s", id)
}

func (r *cachedMovieRepo) Get(ctx context.Context, id string) (*biz.Movie, error) {
	if movie, ok := r.cached(ctx, id); ok {
		return movie, nil
	}
	movie, err := r.MovieRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(movie); err == nil {
		if err := r.rdb.SetNX(ctx, movieCacheKey(id), data, movieCacheTTL).Err(); err != nil {
			r.log.Warnf("movie cache fill failed for %s: %v", id, err)
		}
	}
	return movie, nil
}

func (r *cachedMovieRepo) Update(ctx context.Context, id string, update *biz.MovieUpdate) (*biz.Movie, error) {
	movie, err := r.MovieRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, biz.ErrMovieNotFound) {
			r.invalidate(ctx, id)
		}
		return nil, err
	}
	data, err := json.Marshal(movie)
	if err == nil {
		err = r.rdb.Set(ctx, movieCacheKey(id), data, movieCacheTTL).Err()
	}
	if err != nil {
		r.log.Warnf("movie cache write failed for %s: %v", id, err)
		r.invalidate(ctx, id)
	}
	return movie, nil
}

func (r *cachedMovieRepo) Delete(ctx context.Context, id string) (*biz.Movie, error) {
	movie, err := r.MovieRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, biz.ErrMovieNotFound) {
			r.invalidate(ctx, id)
		}
		return nil, err
	}
	r.invalidate(ctx, id)
	return movie, nil
}

func (r *cachedMovieRepo) cached(ctx context.Context, id string) (*biz.Movie, bool) {
	cached, err := r.rdb.Get(ctx, movieCacheKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.Warnf("movie cache read failed for %s: %v", id, err)
		}
		return nil, false
	}
	var movie biz.Movie
	if err := json.Unmarshal([]byte(cached), &movie); err != nil {
		return nil, false
	}
	r.log.Debugf("cache hit for movie: %s", id)
	return &movie, true
}

func (r *cachedMovieRepo) invalidate(ctx context.Context, id string) {
	if err := r.rdb.Del(ctx, movieCacheKey(id)).Err(); err != nil {
		r.log.Errorf("movie cache invalidate failed for %s: %v", id, err)
	}
}
