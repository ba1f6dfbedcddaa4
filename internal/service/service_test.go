package service

import (
	"errors"
	"fmt"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"

	"github.com/cinelog/movieapp/internal/biz"
	"github.com/cinelog/movieapp/internal/conf"
)

func TestToStatus(t *testing.T) {
	l := log.NewHelper(log.DefaultLogger)
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReason string
	}{
		{"validation", fmt.Errorf("%w: title is required", biz.ErrValidation), 400, "BAD_REQUEST"},
		{"not found", fmt.Errorf("failed to get movie x: %w", biz.ErrMovieNotFound), 404, "MOVIE_NOT_FOUND"},
		{"unauthorized", biz.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"store failure", errors.New("mongo: connection refused"), 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := kerrors.FromError(toStatus(l, "op", tt.err))
			assert.Equal(t, int32(tt.wantCode), se.Code)
			assert.Equal(t, tt.wantReason, se.Reason)
		})
	}
}

func TestToStatus_HidesInternalDetails(t *testing.T) {
	se := kerrors.FromError(toStatus(log.NewHelper(log.DefaultLogger), "op", errors.New("dial tcp 10.0.0.3:27017")))
	assert.NotContains(t, se.Message, "10.0.0.3")
}

func TestCookieName(t *testing.T) {
	assert.Equal(t, DefaultCookieName, CookieName(nil))
	assert.Equal(t, DefaultCookieName, CookieName(&conf.Auth{}))
	assert.Equal(t, "sid", CookieName(&conf.Auth{CookieName: "sid"}))
}
