package biz

import (
	"context"
	"time"
)

// Movie domain model
type Movie struct {
	ID        string
	Title     string
	Year      *int32
	Genre     *string
	Watched   bool
	Rating    *float64
	CreatedAt time.Time
}

// MovieInput is the write payload shared by create and replace. Nil fields
// were not supplied by the caller; Watched is the raw JSON value and goes
// through CoerceWatched.
type MovieInput struct {
	Title   *string `validate:"required,notblank"`
	Year    *int32
	Genre   *string
	Rating  *float64
	Watched interface{}
}

// MovieUpdate carries the fields to overwrite on an existing movie. Nil
// pointers leave the stored value untouched.
type MovieUpdate struct {
	Title   *string
	Year    *int32
	Genre   *string
	Rating  *float64
	Watched bool
}

// MovieQuery domain model
type MovieQuery struct {
	Watched      *bool
	SortByRating bool
}

// Session is an issued login token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

// MovieRepo defines the repository interface for movies
type MovieRepo interface {
	List(ctx context.Context, query *MovieQuery) ([]*Movie, error)
	Get(ctx context.Context, id string) (*Movie, error)
	Create(ctx context.Context, movie *Movie) (*Movie, error)
	Update(ctx context.Context, id string, update *MovieUpdate) (*Movie, error)
	Delete(ctx context.Context, id string) (*Movie, error)
}

// SessionRepo stores opaque session tokens until they expire.
type SessionRepo interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// CredentialChecker decides whether a username/password pair may log in.
type CredentialChecker interface {
	Check(ctx context.Context, username, password string) (bool, error)
}
