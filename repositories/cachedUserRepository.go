package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/redis/go-redis/v9"
)

/*
caches:
	User:$id
*/

// CachedUserRepository serves FindById from Redis. Cached copies carry no
// password hash, so credential checks must go through FindByEmail.
type CachedUserRepository struct {
	models.UserRepository
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedUserRepository(inner models.UserRepository, rdb *redis.Client, ttl time.Duration) *CachedUserRepository {
	return &CachedUserRepository{UserRepository: inner, rdb: rdb, ttl: ttl}
}

func userCacheKey(id int) string {
	return fmt.Sprintf("User:%d", id)
}

func (r *CachedUserRepository) FindById(ctx context.Context, id int) (*models.User, error) {
	if r.rdb == nil {
		return r.UserRepository.FindById(ctx, id)
	}

	key := userCacheKey(id)
	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(val), &user); err == nil {
			return &user, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	user, err := r.UserRepository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(user); err == nil {
		// a failed cache write only costs a later miss
		_ = r.rdb.Set(ctx, key, data, r.ttl).Err()
	}
	return user, nil
}

func (r *CachedUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.UserRepository.Update(ctx, user); err != nil {
		return err
	}
	return r.Invalidate(ctx, user.ID)
}

func (r *CachedUserRepository) Invalidate(ctx context.Context, id int) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, userCacheKey(id)).Err()
}
