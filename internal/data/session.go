package data

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cinelog/movieapp/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

type sessionRepo struct {
	rdb    *redis.Client
	local  *ttlMap[string, struct{}]
	log    *log.Helper
	writes atomic.Uint64
}

// sweepEvery bounds the in-process map: every Nth Save drops expired tokens.
const sweepEvery = 64

// NewSessionRepo keeps sessions in Redis when it is connected, otherwise in
// process memory.
func NewSessionRepo(data *Data, logger log.Logger) biz.SessionRepo {
	l := log.NewHelper(logger)
	if data.rdb == nil {
		l.Warn("redis unavailable, sessions are kept in process and lost on restart")
	}
	return &sessionRepo{
		rdb:   data.rdb,
		local: newTTLMap[string, struct{}](),
		log:   l,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (r *sessionRepo) Save(ctx context.Context, token string, ttl time.Duration) error {
	if r.rdb != nil {
		if err := r.rdb.Set(ctx, sessionKey(token), 1, ttl).Err(); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		return nil
	}
	r.local.Set(token, struct{}{}, ttl)
	if r.writes.Add(1)%sweepEvery == 0 {
		if n := r.local.Sweep(); n > 0 {
			r.log.Debugf("dropped %d expired sessions", n)
		}
	}
	return nil
}

func (r *sessionRepo) Exists(ctx context.Context, token string) (bool, error) {
	if r.rdb != nil {
		n, err := r.rdb.Exists(ctx, sessionKey(token)).Result()
		if err != nil {
			return false, fmt.Errorf("failed to look up session: %w", err)
		}
		return n > 0, nil
	}
	_, ok := r.local.Get(token)
	return ok, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	if r.rdb != nil {
		if err := r.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	}
	r.local.Delete(token)
	return nil
}
