package handlers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxBurst = 10

type keyLimiter struct {
	perDay  int
	limiter *rate.Limiter
}

// limiterStore holds one token bucket per API key. A key's bucket is rebuilt
// when its daily limit changes.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[uint]*keyLimiter
}

func newLimiterStore() *limiterStore {
	return &limiterStore{limiters: make(map[uint]*keyLimiter)}
}

// allow reports whether the key may make another request. perDay <= 0 means
// unlimited.
func (s *limiterStore) allow(keyID uint, perDay int) bool {
	if perDay <= 0 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kl, ok := s.limiters[keyID]
	if !ok || kl.perDay != perDay {
		kl = &keyLimiter{
			perDay:  perDay,
			limiter: rate.NewLimiter(rate.Every(24*time.Hour/time.Duration(perDay)), min(perDay, maxBurst)),
		}
		s.limiters[keyID] = kl
	}
	return kl.limiter.Allow()
}
