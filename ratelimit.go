package main

import (
	"sync"
	"time"
)

// rateLimiter is a simple per-key token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
	stop     chan struct{}
	once     sync.Once
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
		stop:     make(chan struct{}),
	}
	go rl.cleanup(time.Minute, 5*time.Minute)
	return rl
}

// cleanup forgets keys idle for longer than ttl.
func (rl *rateLimiter) cleanup(every, ttl time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, b := range rl.visitors {
				if time.Since(b.lastSeen) > ttl {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[key]
	if !ok {
		rl.visitors[key] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	if refill := int(time.Since(b.lastSeen) / rl.interval); refill > 0 {
		b.tokens = min(b.tokens+refill*rl.rate, rl.rate)
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
