package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

/*
caches:
	RevokedToken:$jti
*/

// SessionRepository keeps the list of revoked token ids until they expire.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func revokedTokenKey(tokenId string) string {
	return "RevokedToken:" + tokenId
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenId string, until time.Time) error {
	if r.rdb == nil || tokenId == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedTokenKey(tokenId), "1", ttl).Err()
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	if r.rdb == nil || tokenId == "" {
		return false, nil
	}
	_, err := r.rdb.Get(ctx, revokedTokenKey(tokenId)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
