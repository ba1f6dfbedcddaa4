package data

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_InProcess(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(&Data{}, log.DefaultLogger).(*sessionRepo)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.local.now = func() time.Time { return now }

	ok, err := repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, "tok", time.Hour))
	ok, err = repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(61 * time.Minute)
	ok, err = repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok, "session must expire with its ttl")

	require.NoError(t, repo.Save(ctx, "tok2", time.Hour))
	require.NoError(t, repo.Delete(ctx, "tok2"))
	ok, err = repo.Exists(ctx, "tok2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepo_SweepsExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(&Data{}, log.DefaultLogger).(*sessionRepo)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.local.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, "old", time.Second))
	now = now.Add(time.Minute)
	for i := 1; i < sweepEvery; i++ {
		require.NoError(t, repo.Save(ctx, "fresh", time.Hour))
	}

	repo.local.mu.RLock()
	_, present := repo.local.data["old"]
	repo.local.mu.RUnlock()
	assert.False(t, present)
}
