package biz

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
)
