// Package v1 holds the JSON contract of the movie API.
package v1

import "time"

// Movie is the wire form of a catalog entry.
type Movie struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Year      *int32    `json:"year,omitempty"`
	Genre     *string   `json:"genre,omitempty"`
	Watched   bool      `json:"watched"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MovieList encodes as a bare JSON array.
type MovieList []*Movie

type ListMoviesRequest struct{}

type GetMovieRequest struct {
	Id string `json:"id"`
}

// CreateMovieRequest accepts watched as a boolean or the string "true".
type CreateMovieRequest struct {
	Title   *string     `json:"title"`
	Year    *int32      `json:"year"`
	Genre   *string     `json:"genre"`
	Rating  *float64    `json:"rating"`
	Watched interface{} `json:"watched"`
}

type UpdateMovieRequest struct {
	Id      string      `json:"-"`
	Title   *string     `json:"title"`
	Year    *int32      `json:"year"`
	Genre   *string     `json:"genre"`
	Rating  *float64    `json:"rating"`
	Watched interface{} `json:"watched"`
}

type DeleteMovieRequest struct {
	Id string `json:"id"`
}

type HealthCheckRequest struct{}

type HealthCheckReply struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LogoutRequest struct{}

type LogoutReply struct {
	Message string `json:"message"`
}
