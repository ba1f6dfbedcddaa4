package data

import (
	"github.com/cinelog/movieapp/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

// NewMovieRepo creates the movie repository for the configured store,
// behind the Redis cache when Redis is connected.
func NewMovieRepo(data *Data, logger log.Logger) biz.MovieRepo {
	l := log.NewHelper(logger)
	var repo biz.MovieRepo
	switch {
	case data.db != nil:
		repo = &sqlMovieRepo{db: data.db, log: l}
	case data.movies != nil:
		repo = &mongoMovieRepo{coll: data.movies, log: l}
	case data.mem != nil:
		repo = data.mem
	default:
		l.Warn("no movie store configured, falling back to memory")
		repo = newMemoryMovieRepo()
	}
	if data.rdb != nil {
		return newCachedMovieRepo(repo, data.rdb, l)
	}
	return repo
}
