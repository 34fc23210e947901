package inmem

import (
	"context"
	"sync"
	"time"
)

// SessionRepository is the in-memory token revocation list.
type SessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	nowFn   func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{revoked: map[string]time.Time{}, nowFn: time.Now}
}

func (r *SessionRepository) Revoke(_ context.Context, tokenId string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenId] = until
	return nil
}

func (r *SessionRepository) IsRevoked(_ context.Context, tokenId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenId]
	if !ok {
		return false, nil
	}
	if r.nowFn().After(until) {
		delete(r.revoked, tokenId)
		return false, nil
	}
	return true, nil
}
